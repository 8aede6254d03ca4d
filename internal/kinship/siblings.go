package kinship

import (
	"fmt"
	"slices"
	"strings"
)

// ParentsOf returns the ids of personID's parents in traversal order.
func ParentsOf(personID string, src Source) ([]string, error) {
	return relatedByClass(personID, src, ClassParent)
}

// ChildrenOf returns the ids of personID's children in traversal order.
func ChildrenOf(personID string, src Source) ([]string, error) {
	return relatedByClass(personID, src, ClassChild)
}

// SpousesOf returns the ids of personID's spouses in traversal order.
func SpousesOf(personID string, src Source) ([]string, error) {
	return relatedByClass(personID, src, ClassSpouse)
}

// SiblingsOf returns every person sharing at least one of parentIDs with
// personID, excluding personID itself. Each sibling appears once and the
// result is sorted by id, so parent order does not matter. Children without
// person attributes are skipped.
func SiblingsOf(personID string, parentIDs []string, src Source) ([]Person, error) {
	seen := make(map[string]bool)

	var out []Person

	for _, parentID := range parentIDs {
		children, err := ChildrenOf(parentID, src)
		if err != nil {
			return nil, err
		}

		for _, childID := range children {
			if childID == personID || seen[childID] {
				continue
			}

			seen[childID] = true

			if p, ok := src.Person(childID); ok {
				out = append(out, p)
			}
		}
	}

	slices.SortFunc(out, func(a, b Person) int { return strings.Compare(a.ID, b.ID) })

	return out, nil
}

func relatedByClass(personID string, src Source, class Class) ([]string, error) {
	var out []string

	for _, rel := range src.Relations(personID) {
		c, err := Classify(rel.Type)
		if err != nil {
			return nil, fmt.Errorf("relation %s->%s: %w", personID, rel.PersonID, err)
		}

		if c == class && !slices.Contains(out, rel.PersonID) {
			out = append(out, rel.PersonID)
		}
	}

	return out, nil
}
