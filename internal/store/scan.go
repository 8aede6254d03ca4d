package store

import (
	"fmt"

	"github.com/kindredgraph/kindred/internal/kinship"
)

// personColumns lists the columns selected for person queries.
const personColumns = `id, first_name, last_name, birth_year, death_year,
	gender_id, religion_id, category_id, sub_category_id`

// relationshipColumns lists the columns selected for relationship queries.
const relationshipColumns = `from_person_id, to_person_id, relationship_type`

// scanPerson scans a single row into a kinship.Person.
func scanPerson(scan func(dest ...any) error) (kinship.Person, error) {
	var p kinship.Person

	err := scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.BirthYear,
		&p.DeathYear,
		&p.GenderID,
		&p.ReligionID,
		&p.CategoryID,
		&p.SubCategoryID,
	)
	if err != nil {
		return kinship.Person{}, err
	}

	return p, nil
}

// scanEdge scans a single row into a kinship.Edge. An unrecognised
// relationship code is returned as an error, never dropped.
func scanEdge(scan func(dest ...any) error) (kinship.Edge, error) {
	var (
		e    kinship.Edge
		code string
	)

	if err := scan(&e.FromPersonID, &e.ToPersonID, &code); err != nil {
		return kinship.Edge{}, err
	}

	t, err := kinship.ParseRelationType(code)
	if err != nil {
		return kinship.Edge{}, fmt.Errorf("relationship %s->%s: %w", e.FromPersonID, e.ToPersonID, err)
	}

	e.Type = t

	return e, nil
}
