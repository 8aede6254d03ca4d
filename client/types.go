package client

// Person holds the attributes of one person in the graph.
type Person struct {
	ID            string `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	BirthYear     *int   `json:"birth_year,omitempty"`
	DeathYear     *int   `json:"death_year,omitempty"`
	GenderID      int    `json:"gender_id"`
	ReligionID    *int   `json:"religion_id,omitempty"`
	CategoryID    *int   `json:"category_id,omitempty"`
	SubCategoryID *int   `json:"sub_category_id,omitempty"`
}

// FullName joins first and last name.
func (p Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}

	return p.FirstName + " " + p.LastName
}

// LayoutNode places one person on the canvas.
type LayoutNode struct {
	PersonID   string  `json:"person_id"`
	Generation int     `json:"generation"`
	X          float64 `json:"x"`
}

// LayoutEdge is one drawn relationship.
type LayoutEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Type   string `json:"type"`
	Spouse bool   `json:"is_spouse_edge"`
}

// Layout is a renderable placement of a family or path.
type Layout struct {
	Nodes []LayoutNode `json:"nodes"`
	Edges []LayoutEdge `json:"edges"`
}

// Warning reports a relationship that points at a person with no record.
type Warning struct {
	FromPersonID string `json:"from_person_id"`
	PersonID     string `json:"person_id"`
	Type         string `json:"type"`
}

// FamilyView is the immediate family of one person.
type FamilyView struct {
	Person      Person    `json:"person"`
	Parents     []Person  `json:"parents"`
	Spouses     []Person  `json:"spouses"`
	Children    []Person  `json:"children"`
	Siblings    []Person  `json:"siblings"`
	Layout      *Layout   `json:"layout"`
	LayoutError string    `json:"layout_error,omitempty"`
	Warnings    []Warning `json:"warnings,omitempty"`
}

// PathStep is one person on a path; Relation is how this person relates to
// the previous step and is empty on the first.
type PathStep struct {
	Person   Person  `json:"person"`
	Relation *string `json:"relation"`
}

// PathResult is the outcome of a path search.
type PathResult struct {
	From        string     `json:"from"`
	To          string     `json:"to"`
	Depth       int        `json:"depth"`
	Connected   bool       `json:"connected"`
	Path        []PathStep `json:"path"`
	Layout      *Layout    `json:"layout"`
	LayoutError string     `json:"layout_error,omitempty"`
	Warnings    []Warning  `json:"warnings,omitempty"`
}

// Filter narrows a partner search. Nil or empty fields match everyone.
type Filter struct {
	GenderID             *int  `json:"gender_id,omitempty"`
	BirthYearFrom        *int  `json:"birth_year_from,omitempty"`
	BirthYearTo          *int  `json:"birth_year_to,omitempty"`
	IncludeReligions     []int `json:"include_religions,omitempty"`
	IncludeCategories    []int `json:"include_categories,omitempty"`
	IncludeSubCategories []int `json:"include_sub_categories,omitempty"`
	ExcludeSubCategories []int `json:"exclude_sub_categories,omitempty"`
}

// SearchRequest is the body of a partner search.
type SearchRequest struct {
	RootID   string `json:"root_id"`
	MaxDepth int    `json:"max_depth,omitempty"`
	Filters  Filter `json:"filters"`
}

// Candidate is one admissible partner.
type Candidate struct {
	PersonID string `json:"person_id"`
	Depth    int    `json:"depth"`
	Person   Person `json:"person"`
}

// SubCategory is a lineage group.
type SubCategory struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CategoryID *int   `json:"category_id,omitempty"`
}

// ExplorationNode is one person reached by a search traversal.
type ExplorationNode struct {
	PersonID string `json:"person_id"`
	Person   Person `json:"person"`
	Depth    int    `json:"depth"`
	Incoming *struct {
		FromPersonID string `json:"from_person_id"`
		Type         string `json:"type"`
	} `json:"incoming_edge"`
}

// SearchResult is the response of a partner search.
type SearchResult struct {
	RootID           string `json:"root_id"`
	ExplorationGraph struct {
		RootID   string            `json:"root_id"`
		MaxDepth int               `json:"max_depth"`
		Nodes    []ExplorationNode `json:"nodes"`
	} `json:"exploration_graph"`
	CandidateMatches      []Candidate   `json:"candidate_matches"`
	ExcludedSubCategories []SubCategory `json:"excluded_sub_categories"`
	Warnings              []Warning     `json:"warnings,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	DBConns       string  `json:"db_connections,omitempty"`
	WSClients     int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyResponse is returned by the readiness endpoint.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
