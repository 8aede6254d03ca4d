package kinship

import "fmt"

// Step is a directed, labelled connection used for layout: To is Type to From.
type Step struct {
	From string       `json:"from"`
	To   string       `json:"to"`
	Type RelationType `json:"type"`
}

// AssignGenerations gives rootID the generation rootGeneration and propagates
// levels along steps in order: a parent is one row above, a child one row
// below, a spouse on the same row. A step whose From is unknown but whose To
// is known is applied in reverse. A person reached with two different levels
// yields ErrInconsistentGeneration.
func AssignGenerations(rootID string, steps []Step, rootGeneration int) (map[string]int, error) {
	gens := map[string]int{rootID: rootGeneration}

	for i, s := range steps {
		delta, err := generationDelta(s.Type)
		if err != nil {
			return nil, fmt.Errorf("step %d %s->%s: %w", i, s.From, s.To, err)
		}

		fromGen, fromOK := gens[s.From]
		toGen, toOK := gens[s.To]

		switch {
		case fromOK:
			want := fromGen + delta
			if toOK && toGen != want {
				return nil, fmt.Errorf("%w: %s has generation %d, step %d from %s (%s) implies %d",
					ErrInconsistentGeneration, s.To, toGen, i, s.From, s.Type, want)
			}

			gens[s.To] = want
		case toOK:
			gens[s.From] = toGen - delta
		default:
			return nil, fmt.Errorf("%w: step %d %s->%s", ErrDisconnectedSteps, i, s.From, s.To)
		}
	}

	return gens, nil
}

// PathSteps converts a path into consecutive steps.
func PathSteps(p Path) []Step {
	if len(p) < 2 {
		return nil
	}

	steps := make([]Step, 0, len(p)-1)

	for i := 1; i < len(p); i++ {
		if p[i].Relation == nil {
			continue
		}

		steps = append(steps, Step{From: p[i-1].Person.ID, To: p[i].Person.ID, Type: *p[i].Relation})
	}

	return steps
}

// TreeSteps returns the incoming edge of every non-root node in BFS order.
func TreeSteps(g *ExplorationGraph) []Step {
	steps := make([]Step, 0, len(g.order))

	for _, id := range g.order {
		in := g.nodes[id].Incoming
		if in == nil {
			continue
		}

		steps = append(steps, Step{From: in.FromPersonID, To: id, Type: in.Type})
	}

	return steps
}
