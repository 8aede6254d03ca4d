package kinship

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// LayoutConfig holds the fixed node width and gaps, in layout units.
type LayoutConfig struct {
	NodeWidth     float64 `json:"node_width"`
	HorizontalGap float64 `json:"horizontal_gap"`
	SpouseGap     float64 `json:"spouse_gap"`
}

// DefaultLayoutConfig returns the widths used by the web renderer.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{NodeWidth: 160, HorizontalGap: 40, SpouseGap: 16}
}

// Validate checks that the width is positive and gaps are not negative.
func (c LayoutConfig) Validate() error {
	if !(c.NodeWidth > 0) || math.IsInf(c.NodeWidth, 0) {
		return fmt.Errorf("%w: node width must be positive, got %v", ErrInvalidLayoutConfig, c.NodeWidth)
	}

	if !(c.HorizontalGap >= 0) || !(c.SpouseGap >= 0) {
		return fmt.Errorf("%w: gaps must not be negative (horizontal %v, spouse %v)", ErrInvalidLayoutConfig, c.HorizontalGap, c.SpouseGap)
	}

	return nil
}

// LayoutNode is a positioned person. The node spans [X, X+NodeWidth).
type LayoutNode struct {
	PersonID   string  `json:"person_id"`
	Generation int     `json:"generation"`
	X          float64 `json:"x"`
}

// LayoutEdge connects two positioned persons.
type LayoutEdge struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Type   RelationType `json:"type"`
	Spouse bool         `json:"is_spouse_edge"`
}

// Layout is the renderer-facing result of ComputePositions. Nodes are sorted
// by generation, then X.
type Layout struct {
	Config LayoutConfig `json:"config"`
	Nodes  []LayoutNode `json:"nodes"`
	Edges  []LayoutEdge `json:"edges"`
}

// Node returns the positioned node for personID.
func (l *Layout) Node(personID string) (LayoutNode, bool) {
	for _, n := range l.Nodes {
		if n.PersonID == personID {
			return n, true
		}
	}

	return LayoutNode{}, false
}

// Row returns the nodes of one generation, left to right.
func (l *Layout) Row(generation int) []LayoutNode {
	var row []LayoutNode

	for _, n := range l.Nodes {
		if n.Generation == generation {
			row = append(row, n)
		}
	}

	return row
}

// LayoutSteps assigns generations from rootID along steps and positions them.
func LayoutSteps(rootID string, steps []Step, rootGeneration int, cfg LayoutConfig) (*Layout, error) {
	gens, err := AssignGenerations(rootID, steps, rootGeneration)
	if err != nil {
		return nil, err
	}

	return ComputePositions(gens, steps, cfg)
}

// ComputePositions places every person of generations on its row. Spouses sit
// next to each other, groups of children are centered under their parents
// (and parents over their children), and a final left-to-right pass pushes
// groups apart so no two nodes of a row overlap. Steps whose endpoints are
// missing from generations are ignored; steps that contradict generations
// yield ErrInconsistentGeneration. X values start at 0.
func ComputePositions(generations map[string]int, adjacency []Step, cfg LayoutConfig) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	links, edges, err := buildLinks(generations, adjacency)
	if err != nil {
		return nil, err
	}

	layout := &Layout{Config: cfg, Nodes: make([]LayoutNode, 0, len(generations)), Edges: edges}
	if len(generations) == 0 {
		return layout, nil
	}

	rows := make(map[int][]string)
	for _, id := range nodeOrder(generations, adjacency) {
		g := generations[id]
		rows[g] = append(rows[g], id)
	}

	levels := make([]int, 0, len(rows))
	for g := range rows {
		levels = append(levels, g)
	}

	slices.Sort(levels)

	anchor := slices.MinFunc(levels, func(a, b int) int {
		return cmp.Or(cmp.Compare(abs(a), abs(b)), cmp.Compare(a, b))
	})

	p := &placer{cfg: cfg, links: links, x: make(map[string]float64, len(generations))}
	p.placeRow(rows[anchor], nil)

	for g := anchor - 1; g >= levels[0]; g-- {
		p.placeRow(rows[g], links.children)
	}

	for g := anchor + 1; g <= levels[len(levels)-1]; g++ {
		p.placeRow(rows[g], links.parents)
	}

	minX := math.Inf(1)
	for _, x := range p.x {
		minX = math.Min(minX, x)
	}

	for id, x := range p.x {
		layout.Nodes = append(layout.Nodes, LayoutNode{PersonID: id, Generation: generations[id], X: x - minX})
	}

	slices.SortFunc(layout.Nodes, func(a, b LayoutNode) int {
		return cmp.Or(cmp.Compare(a.Generation, b.Generation), cmp.Compare(a.X, b.X), strings.Compare(a.PersonID, b.PersonID))
	})

	return layout, nil
}

type layoutLinks struct {
	parents  map[string][]string
	children map[string][]string
	spouses  map[string][]string
}

func buildLinks(generations map[string]int, adjacency []Step) (*layoutLinks, []LayoutEdge, error) {
	links := &layoutLinks{
		parents:  make(map[string][]string),
		children: make(map[string][]string),
		spouses:  make(map[string][]string),
	}

	var edges []LayoutEdge

	for i, s := range adjacency {
		fromGen, fromOK := generations[s.From]
		toGen, toOK := generations[s.To]

		if !fromOK || !toOK || s.From == s.To {
			continue
		}

		class, err := Classify(s.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("step %d %s->%s: %w", i, s.From, s.To, err)
		}

		delta, _ := generationDelta(s.Type) //nolint:errcheck // type already classified.
		if toGen-fromGen != delta {
			return nil, nil, fmt.Errorf("%w: %s (generation %d) is %s of %s (generation %d)",
				ErrInconsistentGeneration, s.To, toGen, s.Type, s.From, fromGen)
		}

		switch class {
		case ClassParent:
			links.parents[s.From] = appendUnique(links.parents[s.From], s.To)
			links.children[s.To] = appendUnique(links.children[s.To], s.From)
		case ClassChild:
			links.children[s.From] = appendUnique(links.children[s.From], s.To)
			links.parents[s.To] = appendUnique(links.parents[s.To], s.From)
		case ClassSpouse:
			links.spouses[s.From] = appendUnique(links.spouses[s.From], s.To)
			links.spouses[s.To] = appendUnique(links.spouses[s.To], s.From)
		}

		edges = append(edges, LayoutEdge{From: s.From, To: s.To, Type: s.Type, Spouse: class == ClassSpouse})
	}

	return links, edges, nil
}

// nodeOrder lists persons by first appearance in adjacency, then the rest by id.
func nodeOrder(generations map[string]int, adjacency []Step) []string {
	order := make([]string, 0, len(generations))
	seen := make(map[string]bool, len(generations))

	visit := func(id string) {
		if _, ok := generations[id]; ok && !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}

	for _, s := range adjacency {
		visit(s.From)
		visit(s.To)
	}

	rest := make([]string, 0, len(generations)-len(order))
	for id := range generations {
		if !seen[id] {
			rest = append(rest, id)
		}
	}

	slices.Sort(rest)

	return append(order, rest...)
}

type placer struct {
	cfg   LayoutConfig
	links *layoutLinks
	x     map[string]float64
}

// unit is a run of spouse-linked persons drawn side by side.
type unit []string

// group is a run of units sharing the same placed relatives.
type group struct {
	units    []unit
	center   float64
	anchored bool
}

// placeRow positions one row. related maps a person to the relatives whose
// placement it should be centered on; nil places the row left to right.
func (p *placer) placeRow(row []string, related map[string][]string) {
	if len(row) == 0 {
		return
	}

	var groups []*group

	byKey := make(map[string]*group)

	for _, u := range p.units(row) {
		var anchors []string

		for _, member := range u {
			for _, r := range related[member] {
				if _, placed := p.x[r]; placed && !slices.Contains(anchors, r) {
					anchors = append(anchors, r)
				}
			}
		}

		if len(anchors) == 0 {
			groups = append(groups, &group{units: []unit{u}})

			continue
		}

		slices.Sort(anchors)
		key := strings.Join(anchors, "\x00")

		g, ok := byKey[key]
		if !ok {
			g = &group{center: p.midpoint(anchors), anchored: true}
			byKey[key] = g
			groups = append(groups, g)
		}

		g.units = append(g.units, u)
	}

	var anchored, loose []*group

	for _, g := range groups {
		if g.anchored {
			anchored = append(anchored, g)
		} else {
			loose = append(loose, g)
		}
	}

	slices.SortStableFunc(anchored, func(a, b *group) int { return cmp.Compare(a.center, b.center) })

	cursor := math.Inf(-1)

	for _, g := range anchored {
		left := math.Max(g.center-p.groupWidth(g)/2, cursor)
		cursor = p.placeGroup(g, left)
	}

	if math.IsInf(cursor, -1) {
		cursor = 0
	}

	for _, g := range loose {
		cursor = p.placeGroup(g, cursor)
	}
}

// units splits row into spouse-linked runs, in row order.
func (p *placer) units(row []string) []unit {
	inRow := make(map[string]bool, len(row))
	for _, id := range row {
		inRow[id] = true
	}

	assigned := make(map[string]bool, len(row))

	var out []unit

	for _, id := range row {
		if assigned[id] {
			continue
		}

		assigned[id] = true
		u := unit{id}

		for i := 0; i < len(u); i++ {
			for _, spouse := range p.links.spouses[u[i]] {
				if inRow[spouse] && !assigned[spouse] {
					assigned[spouse] = true
					u = append(u, spouse)
				}
			}
		}

		out = append(out, u)
	}

	return out
}

func (p *placer) midpoint(ids []string) float64 {
	var sum float64
	for _, id := range ids {
		sum += p.x[id] + p.cfg.NodeWidth/2
	}

	return sum / float64(len(ids))
}

func (p *placer) unitWidth(u unit) float64 {
	n := float64(len(u))

	return n*p.cfg.NodeWidth + (n-1)*p.cfg.SpouseGap
}

func (p *placer) groupWidth(g *group) float64 {
	var w float64
	for i, u := range g.units {
		if i > 0 {
			w += p.cfg.HorizontalGap
		}

		w += p.unitWidth(u)
	}

	return w
}

// placeGroup lays g out from left and returns the next free position.
func (p *placer) placeGroup(g *group, left float64) float64 {
	pos := left

	for i, u := range g.units {
		if i > 0 {
			pos += p.cfg.HorizontalGap
		}

		for j, id := range u {
			if j > 0 {
				pos += p.cfg.SpouseGap
			}

			p.x[id] = pos
			pos += p.cfg.NodeWidth
		}
	}

	return pos + p.cfg.HorizontalGap
}

func appendUnique(list []string, id string) []string {
	if slices.Contains(list, id) {
		return list
	}

	return append(list, id)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
