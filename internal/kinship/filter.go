package kinship

import "slices"

// Filter holds the attribute criteria of a partner search. Nil pointers and
// empty slices do not constrain. A range or include set rejects persons whose
// attribute is unknown.
type Filter struct {
	GenderID             *int  `json:"gender_id,omitempty"`
	BirthYearFrom        *int  `json:"birth_year_from,omitempty"`
	BirthYearTo          *int  `json:"birth_year_to,omitempty"`
	IncludeReligions     []int `json:"include_religions,omitempty"`
	IncludeCategories    []int `json:"include_categories,omitempty"`
	IncludeSubCategories []int `json:"include_sub_categories,omitempty"`
	ExcludeSubCategories []int `json:"exclude_sub_categories,omitempty"`
}

// Admit reports whether p satisfies every criterion of f.
func (f Filter) Admit(p Person) bool {
	if f.GenderID != nil && p.GenderID != *f.GenderID {
		return false
	}

	if f.BirthYearFrom != nil && (p.BirthYear == nil || *p.BirthYear < *f.BirthYearFrom) {
		return false
	}

	if f.BirthYearTo != nil && (p.BirthYear == nil || *p.BirthYear > *f.BirthYearTo) {
		return false
	}

	if !included(f.IncludeReligions, p.ReligionID) ||
		!included(f.IncludeCategories, p.CategoryID) ||
		!included(f.IncludeSubCategories, p.SubCategoryID) {
		return false
	}

	if p.SubCategoryID != nil && slices.Contains(f.ExcludeSubCategories, *p.SubCategoryID) {
		return false
	}

	return true
}

func included(set []int, v *int) bool {
	if len(set) == 0 {
		return true
	}

	return v != nil && slices.Contains(set, *v)
}

// ExogamyExclusions returns the sub-categories a partner of rootID must not
// share: the root's own, its mother's and its maternal grandmother's. The
// lineage is always read from the root, never from a candidate. Unknown
// sub-categories and missing ancestors are ignored. The result is sorted.
func ExogamyExclusions(rootID string, src Source) []int {
	var out []int

	add := func(id string) {
		p, ok := src.Person(id)
		if !ok || p.SubCategoryID == nil {
			return
		}

		if !slices.Contains(out, *p.SubCategoryID) {
			out = append(out, *p.SubCategoryID)
		}
	}

	add(rootID)

	if mother, ok := firstRelation(src, rootID, Mother); ok {
		add(mother)

		if grandmother, ok := firstRelation(src, mother, Mother); ok {
			add(grandmother)
		}
	}

	slices.Sort(out)

	return out
}

// MatchPredicate combines a search filter with the root's exogamy exclusions.
// A person whose sub-category is excluded is rejected regardless of any other
// criterion.
func MatchPredicate(f Filter, exclusions []int) Predicate {
	excluded := slices.Concat(f.ExcludeSubCategories, exclusions)

	return func(p Person) bool {
		if p.SubCategoryID != nil && slices.Contains(excluded, *p.SubCategoryID) {
			return false
		}

		return f.Admit(p)
	}
}

func firstRelation(src Source, personID string, t RelationType) (string, bool) {
	for _, rel := range src.Relations(personID) {
		if rel.Type == t {
			return rel.PersonID, true
		}
	}

	return "", false
}
