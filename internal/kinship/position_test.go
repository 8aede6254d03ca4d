package kinship

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNoOverlap(t *testing.T, l *Layout) {
	t.Helper()

	rows := make(map[int][]LayoutNode)
	for _, n := range l.Nodes {
		rows[n.Generation] = append(rows[n.Generation], n)
	}

	for gen, row := range rows {
		for i := 1; i < len(row); i++ {
			assert.GreaterOrEqual(t, row[i].X-row[i-1].X, l.Config.NodeWidth,
				"generation %d: %s at %v overlaps %s at %v", gen, row[i].PersonID, row[i].X, row[i-1].PersonID, row[i-1].X)
		}
	}
}

func xOf(t *testing.T, l *Layout, id string) float64 {
	t.Helper()

	n, ok := l.Node(id)
	require.True(t, ok, id)

	return n.X
}

func TestComputePositions_CentersParentsAndChildren(t *testing.T) {
	steps := []Step{
		{From: "root", To: "f", Type: Father},
		{From: "root", To: "m", Type: Mother},
		{From: "f", To: "m", Type: Wife},
		{From: "root", To: "w", Type: Wife},
		{From: "root", To: "c", Type: Son},
	}

	l, err := LayoutSteps("root", steps, 0, DefaultLayoutConfig())
	require.NoError(t, err)

	assert.Equal(t, []LayoutNode{
		{PersonID: "f", Generation: -1, X: 0},
		{PersonID: "m", Generation: -1, X: 176},
		{PersonID: "root", Generation: 0, X: 88},
		{PersonID: "w", Generation: 0, X: 264},
		{PersonID: "c", Generation: 1, X: 88},
	}, l.Nodes)

	require.Len(t, l.Edges, len(steps))
	assert.True(t, l.Edges[2].Spouse)
	assert.False(t, l.Edges[0].Spouse)
}

func TestComputePositions_PathLayout(t *testing.T) {
	g, err := Explore("root", familySnapshot(t), ExploreOptions{MaxDepth: 6})
	require.NoError(t, err)

	p, err := ExtractPath(g, "root", "x")
	require.NoError(t, err)

	l, err := LayoutSteps("root", PathSteps(p), 0, DefaultLayoutConfig())
	require.NoError(t, err)

	assert.Equal(t, 0.0, xOf(t, l, "root"))
	assert.Equal(t, 200.0, xOf(t, l, "x"))
	assert.Equal(t, 0.0, xOf(t, l, "m"))
	assert.Equal(t, 200.0, xOf(t, l, "a"))
	assert.Equal(t, 100.0, xOf(t, l, "gm"))
}

func TestComputePositions_NoOverlapOnWideTree(t *testing.T) {
	persons := []Person{{ID: "root", GenderID: 1}}
	var edges []Edge

	// Four generations with several siblings and spouses per family.
	add := func(from, to string, typ RelationType, gender int) {
		persons = append(persons, Person{ID: to, GenderID: gender})
		edges = append(edges, Edge{FromPersonID: from, ToPersonID: to, Type: typ})
	}

	add("root", "f", Father, 1)
	add("root", "m", Mother, 2)
	edges = append(edges, Edge{FromPersonID: "f", ToPersonID: "m", Type: Wife})

	for i := range 4 {
		sib := fmt.Sprintf("sib%d", i)
		add("f", sib, Son, 1)
		edges = append(edges, Edge{FromPersonID: sib, ToPersonID: "m", Type: Mother})
		add(sib, sib+"-w", Wife, 2)

		for j := range 3 {
			add(sib, fmt.Sprintf("%s-c%d", sib, j), Daughter, 2)
		}
	}

	add("root", "w", Wife, 2)

	for i := range 5 {
		add("root", fmt.Sprintf("kid%d", i), Son, 1)
	}

	add("f", "ff", Father, 1)
	add("f", "fm", Mother, 2)
	add("m", "mf", Father, 1)
	add("m", "mm", Mother, 2)

	s := mustSnapshot(t, persons, edges)

	g, err := Explore("root", s, ExploreOptions{MaxDepth: 4})
	require.NoError(t, err)

	cfg := DefaultLayoutConfig()

	l, err := LayoutSteps("root", TreeSteps(g), 0, cfg)
	require.NoError(t, err)

	assert.Len(t, l.Nodes, g.Len())
	assertNoOverlap(t, l)

	minX := l.Nodes[0].X
	for _, n := range l.Nodes {
		minX = min(minX, n.X)
	}

	assert.Equal(t, 0.0, minX)

	again, err := LayoutSteps("root", TreeSteps(g), 0, cfg)
	require.NoError(t, err)
	assert.Equal(t, l, again, "layout is deterministic")
}

func TestComputePositions_SpousesAdjacent(t *testing.T) {
	cfg := LayoutConfig{NodeWidth: 100, HorizontalGap: 30, SpouseGap: 5}

	l, err := LayoutSteps("h", []Step{
		{From: "h", To: "w1", Type: Wife},
		{From: "h", To: "w2", Type: Wife},
		{From: "h", To: "k", Type: Son},
	}, 0, cfg)
	require.NoError(t, err)

	row := l.Row(0)
	require.Len(t, row, 3)

	for i := 1; i < len(row); i++ {
		assert.Equal(t, cfg.NodeWidth+cfg.SpouseGap, row[i].X-row[i-1].X)
	}

	assert.Equal(t, xOf(t, l, "h"), xOf(t, l, "k"))
}

func TestComputePositions_RejectsInconsistentAdjacency(t *testing.T) {
	gens := map[string]int{"a": 0, "b": 0}

	_, err := ComputePositions(gens, []Step{{From: "a", To: "b", Type: Father}}, DefaultLayoutConfig())
	assert.ErrorIs(t, err, ErrInconsistentGeneration)

	_, err = LayoutSteps("a", []Step{
		{From: "a", To: "b", Type: Father},
		{From: "b", To: "c", Type: Father},
		{From: "a", To: "c", Type: Wife},
	}, 0, DefaultLayoutConfig())
	assert.ErrorIs(t, err, ErrInconsistentGeneration)
}

func TestComputePositions_InvalidConfig(t *testing.T) {
	for _, cfg := range []LayoutConfig{
		{NodeWidth: 0, HorizontalGap: 10},
		{NodeWidth: 10, HorizontalGap: -1},
		{NodeWidth: 10, SpouseGap: -1},
	} {
		_, err := ComputePositions(map[string]int{"a": 0}, nil, cfg)
		assert.ErrorIs(t, err, ErrInvalidLayoutConfig, "%+v", cfg)
	}
}

func TestComputePositions_Empty(t *testing.T) {
	l, err := ComputePositions(nil, nil, DefaultLayoutConfig())
	require.NoError(t, err)
	assert.Empty(t, l.Nodes)
}

func TestComputePositions_UnlinkedNodesAppended(t *testing.T) {
	gens := map[string]int{"a": 0, "z": -1, "y": -1}

	l, err := ComputePositions(gens, nil, DefaultLayoutConfig())
	require.NoError(t, err)

	assertNoOverlap(t, l)
	assert.Equal(t, []string{"y", "z"}, []string{l.Row(-1)[0].PersonID, l.Row(-1)[1].PersonID})
}
