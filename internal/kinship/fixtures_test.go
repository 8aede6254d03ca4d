package kinship

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func mustSnapshot(t *testing.T, persons []Person, edges []Edge) *Snapshot {
	t.Helper()

	s, err := NewSnapshot(persons, edges)
	require.NoError(t, err)

	return s
}

// familySnapshot builds a three-generation family around "root":
//
//	gm (sub 30) is the mother of m and a.
//	f (sub 11) is married to m (sub 20); their children are root and sis.
//	root (sub 10) is married to w (sub 40); their son is c.
//	a (sub 30) is the mother of x (sub 50).
//
// Every relationship is stored in a single direction only.
func familySnapshot(t *testing.T) *Snapshot {
	t.Helper()

	persons := []Person{
		{ID: "root", FirstName: "Ravi", GenderID: 1, BirthYear: intp(1988), SubCategoryID: intp(10)},
		{ID: "f", FirstName: "Farid", GenderID: 1, BirthYear: intp(1960), SubCategoryID: intp(11)},
		{ID: "m", FirstName: "Mira", GenderID: 2, BirthYear: intp(1962), SubCategoryID: intp(20)},
		{ID: "sis", FirstName: "Sana", GenderID: 2, BirthYear: intp(1991), SubCategoryID: intp(10)},
		{ID: "gm", FirstName: "Gita", GenderID: 2, BirthYear: intp(1935), SubCategoryID: intp(30)},
		{ID: "a", FirstName: "Asha", GenderID: 2, BirthYear: intp(1965), SubCategoryID: intp(30)},
		{ID: "x", FirstName: "Xena", GenderID: 2, BirthYear: intp(1992), ReligionID: intp(1), CategoryID: intp(2), SubCategoryID: intp(50)},
		{ID: "w", FirstName: "Wafa", GenderID: 2, BirthYear: intp(1985), SubCategoryID: intp(40)},
		{ID: "c", FirstName: "Cyrus", GenderID: 1, BirthYear: intp(2015)},
	}

	edges := []Edge{
		{FromPersonID: "root", ToPersonID: "f", Type: Father},
		{FromPersonID: "root", ToPersonID: "m", Type: Mother},
		{FromPersonID: "sis", ToPersonID: "f", Type: Father},
		{FromPersonID: "sis", ToPersonID: "m", Type: Mother},
		{FromPersonID: "f", ToPersonID: "m", Type: Wife},
		{FromPersonID: "m", ToPersonID: "gm", Type: Mother},
		{FromPersonID: "a", ToPersonID: "gm", Type: Mother},
		{FromPersonID: "x", ToPersonID: "a", Type: Mother},
		{FromPersonID: "root", ToPersonID: "w", Type: Wife},
		{FromPersonID: "c", ToPersonID: "root", Type: Father},
		{FromPersonID: "c", ToPersonID: "w", Type: Mother},
	}

	return mustSnapshot(t, persons, edges)
}

// nuclearSnapshot is a root with two parents and two children.
func nuclearSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	return mustSnapshot(t,
		[]Person{
			{ID: "r", GenderID: 1},
			{ID: "p1", GenderID: 1},
			{ID: "p2", GenderID: 2},
			{ID: "c1", GenderID: 1},
			{ID: "c2", GenderID: 2},
		},
		[]Edge{
			{FromPersonID: "r", ToPersonID: "p1", Type: Father},
			{FromPersonID: "r", ToPersonID: "p2", Type: Mother},
			{FromPersonID: "r", ToPersonID: "c1", Type: Son},
			{FromPersonID: "r", ToPersonID: "c2", Type: Daughter},
		},
	)
}

// fakeSource serves fixed relations, including ones a Snapshot would reject.
type fakeSource struct {
	persons   map[string]Person
	relations map[string][]Relation
}

func (f *fakeSource) Relations(personID string) []Relation { return f.relations[personID] }

func (f *fakeSource) Person(personID string) (Person, bool) {
	p, ok := f.persons[personID]

	return p, ok
}
