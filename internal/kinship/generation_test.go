package kinship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignGenerations_Path(t *testing.T) {
	g, err := Explore("root", familySnapshot(t), ExploreOptions{MaxDepth: 6})
	require.NoError(t, err)

	p, err := ExtractPath(g, "root", "x")
	require.NoError(t, err)

	gens, err := AssignGenerations("root", PathSteps(p), 0)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"root": 0, "m": -1, "gm": -2, "a": -1, "x": 0}, gens)
}

func TestAssignGenerations_RootOffset(t *testing.T) {
	gens, err := AssignGenerations("r", []Step{{From: "r", To: "c", Type: Son}}, 5)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"r": 5, "c": 6}, gens)
}

func TestAssignGenerations_ReverseStep(t *testing.T) {
	steps := []Step{
		{From: "r", To: "w", Type: Wife},
		{From: "c", To: "w", Type: Mother},
	}

	gens, err := AssignGenerations("r", steps, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, gens["c"])
}

func TestAssignGenerations_Inconsistent(t *testing.T) {
	steps := []Step{
		{From: "a", To: "b", Type: Father},
		{From: "b", To: "c", Type: Father},
		{From: "a", To: "c", Type: Husband},
	}

	_, err := AssignGenerations("a", steps, 0)
	require.ErrorIs(t, err, ErrInconsistentGeneration)
	assert.Contains(t, err.Error(), "c has generation -2")
}

func TestAssignGenerations_Disconnected(t *testing.T) {
	_, err := AssignGenerations("a", []Step{{From: "x", To: "y", Type: Son}}, 0)
	assert.ErrorIs(t, err, ErrDisconnectedSteps)
}

func TestAssignGenerations_UnknownType(t *testing.T) {
	_, err := AssignGenerations("a", []Step{{From: "a", To: "b", Type: RelationType(8)}}, 0)
	assert.ErrorIs(t, err, ErrUnknownRelationshipType)
}

func TestAssignGenerations_StepsAreConsistent(t *testing.T) {
	g, err := Explore("root", familySnapshot(t), ExploreOptions{MaxDepth: 6})
	require.NoError(t, err)

	steps := TreeSteps(g)
	require.Len(t, steps, g.Len()-1)

	gens, err := AssignGenerations("root", steps, 0)
	require.NoError(t, err)

	for _, s := range steps {
		class, err := Classify(s.Type)
		require.NoError(t, err)

		switch class {
		case ClassParent:
			assert.Equal(t, gens[s.From]-1, gens[s.To])
		case ClassChild:
			assert.Equal(t, gens[s.From]+1, gens[s.To])
		case ClassSpouse:
			assert.Equal(t, gens[s.From], gens[s.To])
		}
	}
}

func TestPathSteps_Short(t *testing.T) {
	assert.Nil(t, PathSteps(nil))
	assert.Nil(t, PathSteps(Path{{Person: Person{ID: "solo"}}}))
}
