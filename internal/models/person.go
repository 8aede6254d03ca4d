// Package models defines request and response types for the kindred API.
package models

import "github.com/kindredgraph/kindred/internal/kinship"

// maxIDLength caps person ids accepted from callers.
const maxIDLength = 255

// ValidatePersonID checks that a person id is present and within length limits.
func ValidatePersonID(field, id string) error {
	if id == "" {
		if field == "root_id" {
			return ErrMissingRootID
		}

		return ErrMissingID
	}

	if len(id) > maxIDLength {
		return ErrFieldTooLong(field, maxIDLength)
	}

	return nil
}

// ValidateDepth checks a traversal depth against the engine bounds.
func ValidateDepth(depth int) error {
	if depth < kinship.MinDepth || depth > kinship.MaxDepth {
		return ErrOutOfRange("max_depth", kinship.MinDepth, kinship.MaxDepth)
	}

	return nil
}

// SubCategory is a lineage group from the lookup tables.
type SubCategory struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CategoryID *int   `json:"category_id,omitempty"`
}
