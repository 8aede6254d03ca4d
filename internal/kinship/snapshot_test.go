package kinship

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot_DerivesInverseRelations(t *testing.T) {
	s := familySnapshot(t)

	assert.Equal(t, []Relation{
		{PersonID: "f", Type: Father},
		{PersonID: "m", Type: Mother},
		{PersonID: "c", Type: Son, Derived: true},
		{PersonID: "w", Type: Wife},
	}, s.Relations("root"))

	assert.Equal(t, []Relation{
		{PersonID: "a", Type: Daughter, Derived: true},
		{PersonID: "m", Type: Daughter, Derived: true},
	}, s.Relations("gm"))

	assert.Equal(t, []Relation{
		{PersonID: "gm", Type: Mother},
		{PersonID: "root", Type: Son, Derived: true},
		{PersonID: "sis", Type: Daughter, Derived: true},
		{PersonID: "f", Type: Husband, Derived: true},
	}, s.Relations("m"))
}

func TestNewSnapshot_StoredDirectionWins(t *testing.T) {
	s := mustSnapshot(t,
		[]Person{{ID: "a", GenderID: 1}, {ID: "b", GenderID: 1}},
		[]Edge{
			{FromPersonID: "a", ToPersonID: "b", Type: Father},
			{FromPersonID: "b", ToPersonID: "a", Type: Son},
		},
	)

	assert.Equal(t, []Relation{{PersonID: "b", Type: Father}}, s.Relations("a"))
	assert.Equal(t, []Relation{{PersonID: "a", Type: Son}}, s.Relations("b"))
}

func TestNewSnapshot_UnknownGenderFallsBack(t *testing.T) {
	s := mustSnapshot(t,
		[]Person{{ID: "kid", GenderID: 9}, {ID: "mum", GenderID: 2}},
		[]Edge{{FromPersonID: "kid", ToPersonID: "mum", Type: Mother}},
	)

	assert.Equal(t, []Relation{{PersonID: "kid", Type: Son, Derived: true}}, s.Relations("mum"))
}

func TestNewSnapshot_UnknownType(t *testing.T) {
	_, err := NewSnapshot(nil, []Edge{{FromPersonID: "a", ToPersonID: "b", Type: RelationType(77)}})
	require.ErrorIs(t, err, ErrUnknownRelationshipType)
	assert.Contains(t, err.Error(), "a->b")
}

func TestSnapshot_RelationsAreCopies(t *testing.T) {
	s := familySnapshot(t)

	rels := s.Relations("root")
	rels[0].PersonID = "mutated"

	assert.Equal(t, "f", s.Relations("root")[0].PersonID)
}

func TestSnapshot_JSONRebuildsIndexes(t *testing.T) {
	s := familySnapshot(t)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, s.Persons(), decoded.Persons())
	assert.Equal(t, s.Relations("m"), decoded.Relations("m"))

	err = json.Unmarshal([]byte(`{"persons":[],"edges":[{"from_person_id":"a","to_person_id":"b","type":"Uncle"}]}`), &decoded)
	assert.ErrorIs(t, err, ErrUnknownRelationshipType)
}
