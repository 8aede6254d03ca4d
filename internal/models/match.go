package models

import "github.com/kindredgraph/kindred/internal/kinship"

// maxFilterValues caps each include/exclude list of a search.
const maxFilterValues = 200

// MatchSearchRequest is the payload of POST /matches/search.
type MatchSearchRequest struct {
	RootID   string         `json:"root_id"`
	MaxDepth int            `json:"max_depth"`
	Filters  kinship.Filter `json:"filters"`
}

// Validate checks the request, substituting defaultDepth for a zero MaxDepth.
func (r *MatchSearchRequest) Validate(defaultDepth int) error {
	if err := ValidatePersonID("root_id", r.RootID); err != nil {
		return err
	}

	if r.MaxDepth == 0 {
		r.MaxDepth = defaultDepth
	}

	if err := ValidateDepth(r.MaxDepth); err != nil {
		return err
	}

	f := r.Filters
	if f.BirthYearFrom != nil && f.BirthYearTo != nil && *f.BirthYearFrom > *f.BirthYearTo {
		return ErrBirthRange
	}

	lists := map[string][]int{
		"include_religions":      f.IncludeReligions,
		"include_categories":     f.IncludeCategories,
		"include_sub_categories": f.IncludeSubCategories,
		"exclude_sub_categories": f.ExcludeSubCategories,
	}

	for field, values := range lists {
		if len(values) > maxFilterValues {
			return ErrFieldTooLong(field, maxFilterValues)
		}
	}

	return nil
}

// CandidateMatch is one admissible partner with its distance from the root.
type CandidateMatch struct {
	PersonID string         `json:"person_id"`
	Depth    int            `json:"depth"`
	Person   kinship.Person `json:"person"`
}

// MatchResult is the response of a partner search.
type MatchResult struct {
	RootID                string                         `json:"root_id"`
	ExplorationGraph      *kinship.ExplorationGraph      `json:"exploration_graph"`
	CandidateMatches      []CandidateMatch               `json:"candidate_matches"`
	ExcludedSubCategories []SubCategory                  `json:"excluded_sub_categories"`
	Warnings              []kinship.MissingPersonWarning `json:"warnings,omitempty"`
}
