package models

import "github.com/kindredgraph/kindred/internal/kinship"

// FamilyView is the immediate family of one person with a layout for the
// renderer. Layout is nil when the fetched relationships cannot be placed on
// consistent generations; LayoutError then says why.
type FamilyView struct {
	Person      kinship.Person                 `json:"person"`
	Parents     []kinship.Person               `json:"parents"`
	Spouses     []kinship.Person               `json:"spouses"`
	Children    []kinship.Person               `json:"children"`
	Siblings    []kinship.Person               `json:"siblings"`
	Layout      *kinship.Layout                `json:"layout"`
	LayoutError string                         `json:"layout_error,omitempty"`
	Warnings    []kinship.MissingPersonWarning `json:"warnings,omitempty"`
}

// PathResult is the outcome of a two-person path search. Connected is false
// when the target is not reachable within Depth; that is not an error.
type PathResult struct {
	From        string                         `json:"from"`
	To          string                         `json:"to"`
	Depth       int                            `json:"depth"`
	Connected   bool                           `json:"connected"`
	Path        kinship.Path                   `json:"path"`
	Layout      *kinship.Layout                `json:"layout"`
	LayoutError string                         `json:"layout_error,omitempty"`
	Warnings    []kinship.MissingPersonWarning `json:"warnings,omitempty"`
}
