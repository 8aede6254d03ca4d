package kinship

import (
	"fmt"
	"slices"
)

// PathStep is one person on a path and the relation that led to it: Person is
// Relation to the previous step. Relation is nil on the first step.
type PathStep struct {
	Person   Person        `json:"person"`
	Relation *RelationType `json:"relation"`
}

// Path runs from the traversal root to a target.
type Path []PathStep

// PersonIDs returns the ids along the path.
func (p Path) PersonIDs() []string {
	ids := make([]string, len(p))
	for i, s := range p {
		ids[i] = s.Person.ID
	}

	return ids
}

// ExtractPath reconstructs the shortest path from rootID to targetID recorded
// in g. It returns ErrNotConnected when targetID was not reached.
func ExtractPath(g *ExplorationGraph, rootID, targetID string) (Path, error) {
	current, ok := g.nodes[targetID]
	if !ok {
		return nil, fmt.Errorf("%w: %s to %s within depth %d", ErrNotConnected, rootID, targetID, g.maxDepth)
	}

	var rev Path

	for {
		if len(rev) > g.maxDepth {
			return nil, fmt.Errorf("%w: chain from %s exceeds depth %d at %s", ErrCorruptExplorationGraph, targetID, g.maxDepth, current.PersonID)
		}

		if current.Incoming == nil {
			if current.PersonID != rootID {
				return nil, fmt.Errorf("%w: chain from %s ends at %s, not root %s", ErrCorruptExplorationGraph, targetID, current.PersonID, rootID)
			}

			rev = append(rev, PathStep{Person: current.Person})

			break
		}

		label := current.Incoming.Type
		rev = append(rev, PathStep{Person: current.Person, Relation: &label})

		prev, ok := g.nodes[current.Incoming.FromPersonID]
		if !ok {
			return nil, fmt.Errorf("%w: %s discovered from unknown %s", ErrCorruptExplorationGraph, current.PersonID, current.Incoming.FromPersonID)
		}

		current = prev
	}

	slices.Reverse(rev)

	return rev, nil
}
