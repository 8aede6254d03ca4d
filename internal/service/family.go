package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/domain"
	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/models"
)

// familyHops covers parents' other children, which are two hops away.
const familyHops = 2

// Compile-time check: *FamilyService must satisfy domain.FamilyService.
var _ domain.FamilyService = (*FamilyService)(nil)

// FamilyService builds immediate-family views.
type FamilyService struct {
	loader SnapshotLoader
	layout kinship.LayoutConfig
	log    *logrus.Logger
}

// NewFamilyService creates a FamilyService.
func NewFamilyService(loader SnapshotLoader, layout kinship.LayoutConfig, log *logrus.Logger) *FamilyService {
	return &FamilyService{loader: loader, layout: layout, log: log}
}

// FamilyView returns a person with parents, spouses, children and siblings,
// laid out with the person on generation 0.
func (s *FamilyService) FamilyView(ctx context.Context, personID string) (*models.FamilyView, error) {
	s.log.WithField("person_id", personID).Debug("family.view")

	snap, err := s.loader.Load(ctx, personID, familyHops)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	person, ok := snap.Person(personID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", kinship.ErrPersonNotFound, personID)
	}

	parents, err := kinship.ParentsOf(personID, snap)
	if err != nil {
		return nil, err
	}

	spouses, err := kinship.SpousesOf(personID, snap)
	if err != nil {
		return nil, err
	}

	children, err := kinship.ChildrenOf(personID, snap)
	if err != nil {
		return nil, err
	}

	siblings, err := kinship.SiblingsOf(personID, parents, snap)
	if err != nil {
		return nil, err
	}

	view := &models.FamilyView{
		Person:   person,
		Parents:  resolvePersons(snap, parents),
		Spouses:  resolvePersons(snap, spouses),
		Children: resolvePersons(snap, children),
		Siblings: siblings,
		Warnings: missingRelations(personID, snap),
	}

	if siblings == nil {
		view.Siblings = []kinship.Person{}
	}

	reportMissing(s.log, featureFamily, view.Warnings)

	steps := familySteps(personID, snap, parents, siblings)

	view.Layout, view.LayoutError, err = layoutOrFallback(s.log, featureFamily, personID, steps, s.layout)
	if err != nil {
		return nil, err
	}

	observe(featureFamily, start, 1+len(view.Parents)+len(view.Spouses)+len(view.Children)+len(view.Siblings))

	return view, nil
}

// resolvePersons maps ids to persons, skipping ids without attributes.
func resolvePersons(src kinship.Source, ids []string) []kinship.Person {
	out := make([]kinship.Person, 0, len(ids))

	for _, id := range ids {
		if p, ok := src.Person(id); ok {
			out = append(out, p)
		}
	}

	return out
}

func missingRelations(personID string, src kinship.Source) []kinship.MissingPersonWarning {
	var out []kinship.MissingPersonWarning

	for _, rel := range src.Relations(personID) {
		if _, ok := src.Person(rel.PersonID); !ok {
			out = append(out, kinship.MissingPersonWarning{
				FromPersonID: personID,
				PersonID:     rel.PersonID,
				Type:         rel.Type,
			})
		}
	}

	return out
}

// familySteps lists the connections drawn in a family view: the person's own
// relations, the marriage between parents, and each sibling under the first
// parent that has them as a child. Persons without attributes are left out.
func familySteps(personID string, src kinship.Source, parents []string, siblings []kinship.Person) []kinship.Step {
	var steps []kinship.Step

	known := func(id string) bool {
		_, ok := src.Person(id)
		return ok
	}

	seen := map[string]bool{personID: true}

	for _, rel := range src.Relations(personID) {
		if seen[rel.PersonID] || !known(rel.PersonID) {
			continue
		}

		seen[rel.PersonID] = true
		steps = append(steps, kinship.Step{From: personID, To: rel.PersonID, Type: rel.Type})
	}

	for i, p := range parents {
		for _, rel := range src.Relations(p) {
			c, err := kinship.Classify(rel.Type)
			if err != nil || c != kinship.ClassSpouse {
				continue
			}

			// Each couple once, from the earlier parent.
			if j := slices.Index(parents, rel.PersonID); j > i && known(p) && known(rel.PersonID) {
				steps = append(steps, kinship.Step{From: p, To: rel.PersonID, Type: rel.Type})
			}
		}
	}

	for _, sib := range siblings {
		if step, ok := siblingStep(src, parents, sib.ID); ok {
			steps = append(steps, step)
		}
	}

	return steps
}

func siblingStep(src kinship.Source, parents []string, siblingID string) (kinship.Step, bool) {
	for _, p := range parents {
		if _, ok := src.Person(p); !ok {
			continue
		}

		for _, rel := range src.Relations(p) {
			if rel.PersonID != siblingID {
				continue
			}

			if c, err := kinship.Classify(rel.Type); err == nil && c == kinship.ClassChild {
				return kinship.Step{From: p, To: siblingID, Type: rel.Type}, true
			}
		}
	}

	return kinship.Step{}, false
}
