package kinship

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Depth bounds accepted by Explore.
const (
	MinDepth = 1
	MaxDepth = 50
)

// Predicate decides whether a discovered person is a candidate match.
type Predicate func(Person) bool

// ExploreOptions parameterizes Explore. Admit is only set for partner search.
type ExploreOptions struct {
	MaxDepth int
	Admit    Predicate
}

// IncomingEdge is the relation that first discovered a node: the node is Type
// to FromPersonID.
type IncomingEdge struct {
	FromPersonID string       `json:"from_person_id"`
	Type         RelationType `json:"type"`
}

// ExplorationNode is one visited person.
type ExplorationNode struct {
	PersonID string        `json:"person_id"`
	Person   Person        `json:"person"`
	Depth    int           `json:"depth"`
	Incoming *IncomingEdge `json:"incoming_edge"`
}

// Candidate is a discovered person that satisfied the admissibility predicate.
type Candidate struct {
	PersonID string `json:"person_id"`
	Depth    int    `json:"depth"`
}

// ExplorationGraph is the BFS tree of shortest-path discoveries from a root.
// It is immutable: accessors return copies.
type ExplorationGraph struct {
	root       string
	maxDepth   int
	nodes      map[string]ExplorationNode
	order      []string
	candidates []Candidate
	warnings   []MissingPersonWarning
}

// Explore runs a bounded BFS from rootID. Relations are expanded in the order
// src returns them, so the first discovery of a node fixes its incoming edge.
// Nodes at exactly opts.MaxDepth are recorded but not expanded.
func Explore(rootID string, src Source, opts ExploreOptions) (*ExplorationGraph, error) {
	if opts.MaxDepth < MinDepth || opts.MaxDepth > MaxDepth {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxDepth, opts.MaxDepth)
	}

	root, ok := src.Person(rootID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, rootID)
	}

	g := &ExplorationGraph{
		root:     rootID,
		maxDepth: opts.MaxDepth,
		nodes:    map[string]ExplorationNode{rootID: {PersonID: rootID, Person: root}},
		order:    []string{rootID},
	}

	queue := []string{rootID}

	for head := 0; head < len(queue); head++ {
		current := g.nodes[queue[head]]
		if current.Depth >= opts.MaxDepth {
			continue
		}

		for _, rel := range src.Relations(current.PersonID) {
			if _, visited := g.nodes[rel.PersonID]; visited {
				continue
			}

			if _, err := Classify(rel.Type); err != nil {
				return nil, fmt.Errorf("relation %s->%s: %w", current.PersonID, rel.PersonID, err)
			}

			person, ok := src.Person(rel.PersonID)
			if !ok {
				g.warnings = append(g.warnings, MissingPersonWarning{
					FromPersonID: current.PersonID,
					PersonID:     rel.PersonID,
					Type:         rel.Type,
				})

				continue
			}

			node := ExplorationNode{
				PersonID: rel.PersonID,
				Person:   person,
				Depth:    current.Depth + 1,
				Incoming: &IncomingEdge{FromPersonID: current.PersonID, Type: rel.Type},
			}
			g.nodes[node.PersonID] = node
			g.order = append(g.order, node.PersonID)
			queue = append(queue, node.PersonID)

			if opts.Admit != nil && opts.Admit(person) {
				g.candidates = append(g.candidates, Candidate{PersonID: node.PersonID, Depth: node.Depth})
			}
		}
	}

	return g, nil
}

// Root returns the traversal root id.
func (g *ExplorationGraph) Root() string { return g.root }

// MaxDepth returns the depth bound the graph was built with.
func (g *ExplorationGraph) MaxDepth() int { return g.maxDepth }

// Len returns the number of visited persons, root included.
func (g *ExplorationGraph) Len() int { return len(g.order) }

// Contains reports whether personID was reached.
func (g *ExplorationGraph) Contains(personID string) bool {
	_, ok := g.nodes[personID]

	return ok
}

// Node returns a copy of the node for personID.
func (g *ExplorationGraph) Node(personID string) (ExplorationNode, bool) {
	n, ok := g.nodes[personID]
	if !ok {
		return ExplorationNode{}, false
	}

	return copyNode(n), true
}

// Nodes returns copies of all nodes in BFS order.
func (g *ExplorationGraph) Nodes() []ExplorationNode {
	out := make([]ExplorationNode, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, copyNode(g.nodes[id]))
	}

	return out
}

// Candidates returns candidate matches in discovery order.
func (g *ExplorationGraph) Candidates() []Candidate {
	return slices.Clone(g.candidates)
}

// Warnings returns the edges skipped because their target had no attributes.
func (g *ExplorationGraph) Warnings() []MissingPersonWarning {
	return slices.Clone(g.warnings)
}

// MarshalJSON encodes the graph for the search response.
func (g *ExplorationGraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Root     string            `json:"root_id"`
		MaxDepth int               `json:"max_depth"`
		Nodes    []ExplorationNode `json:"nodes"`
	}{
		Root:     g.root,
		MaxDepth: g.maxDepth,
		Nodes:    g.Nodes(),
	})
}

func copyNode(n ExplorationNode) ExplorationNode {
	if n.Incoming != nil {
		in := *n.Incoming
		n.Incoming = &in
	}

	return n
}
