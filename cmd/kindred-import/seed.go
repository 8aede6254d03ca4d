package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kindredgraph/kindred/internal/kinship"
)

// lookupRow is one row of a lookup table (religions, categories, sub-categories).
type lookupRow struct {
	ID         int    `yaml:"id"`
	Name       string `yaml:"name"`
	CategoryID *int   `yaml:"category_id"`
}

type seedPerson struct {
	ID            string `yaml:"id"`
	FirstName     string `yaml:"first_name"`
	LastName      string `yaml:"last_name"`
	BirthYear     *int   `yaml:"birth_year"`
	DeathYear     *int   `yaml:"death_year"`
	GenderID      int    `yaml:"gender_id"`
	ReligionID    *int   `yaml:"religion_id"`
	CategoryID    *int   `yaml:"category_id"`
	SubCategoryID *int   `yaml:"sub_category_id"`
}

type seedRelationship struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Type string `yaml:"type"`
}

// seedFile is the YAML document accepted by the importer.
type seedFile struct {
	Religions     []lookupRow        `yaml:"religions"`
	Categories    []lookupRow        `yaml:"categories"`
	SubCategories []lookupRow        `yaml:"sub_categories"`
	Persons       []seedPerson       `yaml:"persons"`
	Relationships []seedRelationship `yaml:"relationships"`
}

// relationship is a validated seed relationship ready to insert.
type relationship struct {
	From string
	To   string
	Type kinship.RelationType
}

// skippedRelationship records a relationship left out of the import.
type skippedRelationship struct {
	From   string
	To     string
	Reason string
}

// plan is the validated content of a seed file.
type plan struct {
	seed          *seedFile
	relationships []relationship
	skipped       []skippedRelationship
	// dangling counts relationships whose endpoints are not in the seed. They
	// are imported anyway; the persons may already exist or arrive later.
	dangling int
}

func parseSeed(r io.Reader) (*seedFile, error) {
	var s seedFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	return &s, nil
}

// buildPlan validates persons and relationships. Duplicate person ids fail
// the import; bad relationships are skipped with a reason.
func buildPlan(s *seedFile) (*plan, error) {
	ids := make(map[string]bool, len(s.Persons))

	for i, p := range s.Persons {
		if p.ID == "" {
			return nil, fmt.Errorf("person #%d has no id", i+1)
		}

		if ids[p.ID] {
			return nil, fmt.Errorf("duplicate person id %q", p.ID)
		}

		ids[p.ID] = true
	}

	p := &plan{seed: s}
	seen := make(map[relationship]bool, len(s.Relationships))

	for _, r := range s.Relationships {
		if r.From == "" || r.To == "" {
			p.skipped = append(p.skipped, skippedRelationship{r.From, r.To, "missing endpoint"})
			continue
		}

		if r.From == r.To {
			p.skipped = append(p.skipped, skippedRelationship{r.From, r.To, "relationship to self"})
			continue
		}

		t, err := kinship.ParseRelationType(r.Type)
		if err != nil {
			p.skipped = append(p.skipped, skippedRelationship{r.From, r.To, err.Error()})
			continue
		}

		rel := relationship{From: r.From, To: r.To, Type: t}
		if seen[rel] {
			p.skipped = append(p.skipped, skippedRelationship{r.From, r.To, "duplicate"})
			continue
		}

		seen[rel] = true

		if !ids[r.From] || !ids[r.To] {
			p.dangling++
		}

		p.relationships = append(p.relationships, rel)
	}

	return p, nil
}
