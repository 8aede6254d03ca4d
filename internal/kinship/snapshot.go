package kinship

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Person is the read-only attribute snapshot of one person.
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

// Gender returns the person's gender context.
func (p Person) Gender() Gender {
	return GenderFromID(p.GenderID)
}

// FullName joins first and last name.
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Edge is one stored relationship. Type names what To is to From.
type Edge struct {
	FromPersonID string       `json:"from_person_id"`
	ToPersonID   string       `json:"to_person_id"`
	Type         RelationType `json:"type"`
}

// Relation is an edge seen from one person: PersonID is Type to that person.
// Derived is set when the relation comes from the inverse of a stored edge.
type Relation struct {
	PersonID string       `json:"person_id"`
	Type     RelationType `json:"type"`
	Derived  bool         `json:"derived,omitempty"`
}

// Source is the edge and person-attribute lookup consumed by the engine.
// Relations must return every relation of personID in both directions, in a
// deterministic order.
type Source interface {
	Relations(personID string) []Relation
	Person(personID string) (Person, bool)
}

// Snapshot is an immutable, in-memory Source built from fetched persons and
// edges. Reverse relations are derived with Inverse, so each relationship only
// needs to be stored in one direction.
type Snapshot struct {
	persons   map[string]Person
	relations map[string][]Relation
	edges     []Edge
}

// Compile-time check.
var _ Source = (*Snapshot)(nil)

type relationKey struct {
	from, to string
	class    Class
}

// NewSnapshot indexes persons and edges. An edge with an unknown type is a
// fatal error. Edges may reference persons that are not in persons; the
// explorer skips them with a warning.
func NewSnapshot(persons []Person, edges []Edge) (*Snapshot, error) {
	s := &Snapshot{
		persons:   make(map[string]Person, len(persons)),
		relations: make(map[string][]Relation),
		edges:     slices.Clone(edges),
	}

	for _, p := range persons {
		s.persons[p.ID] = p
	}

	seen := make(map[relationKey]bool, len(edges)*2)

	// Stored directions win over derived ones.
	for _, e := range edges {
		class, err := Classify(e.Type)
		if err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.FromPersonID, e.ToPersonID, err)
		}

		key := relationKey{from: e.FromPersonID, to: e.ToPersonID, class: class}
		if seen[key] {
			continue
		}

		seen[key] = true
		s.relations[e.FromPersonID] = append(s.relations[e.FromPersonID], Relation{PersonID: e.ToPersonID, Type: e.Type})
	}

	for _, e := range edges {
		inv, err := Inverse(e.Type, s.persons[e.FromPersonID].Gender())
		if err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.FromPersonID, e.ToPersonID, err)
		}

		class, _ := Classify(inv) //nolint:errcheck // Inverse only returns known codes.

		key := relationKey{from: e.ToPersonID, to: e.FromPersonID, class: class}
		if seen[key] {
			continue
		}

		seen[key] = true
		s.relations[e.ToPersonID] = append(s.relations[e.ToPersonID], Relation{PersonID: e.FromPersonID, Type: inv, Derived: true})
	}

	for id, rels := range s.relations {
		slices.SortStableFunc(rels, compareRelations)
		s.relations[id] = rels
	}

	return s, nil
}

func compareRelations(a, b Relation) int {
	if ra, rb := relationRank(a.Type), relationRank(b.Type); ra != rb {
		return ra - rb
	}

	return strings.Compare(a.PersonID, b.PersonID)
}

// Relations returns a copy of personID's relations in traversal order.
func (s *Snapshot) Relations(personID string) []Relation {
	return slices.Clone(s.relations[personID])
}

// Person looks up a person's attributes.
func (s *Snapshot) Person(personID string) (Person, bool) {
	p, ok := s.persons[personID]

	return p, ok
}

// Persons returns all persons sorted by id.
func (s *Snapshot) Persons() []Person {
	out := make([]Person, 0, len(s.persons))
	for _, p := range s.persons {
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b Person) int { return strings.Compare(a.ID, b.ID) })

	return out
}

// Edges returns the stored edges the snapshot was built from.
func (s *Snapshot) Edges() []Edge {
	return slices.Clone(s.edges)
}

type snapshotJSON struct {
	Persons []Person `json:"persons"`
	Edges   []Edge   `json:"edges"`
}

// MarshalJSON encodes the stored persons and edges.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{Persons: s.Persons(), Edges: s.edges})
}

// UnmarshalJSON rebuilds the snapshot indexes from encoded persons and edges.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	built, err := NewSnapshot(raw.Persons, raw.Edges)
	if err != nil {
		return err
	}

	*s = *built

	return nil
}
