package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// lookupTables lists the lookup tables in dependency order.
var lookupTables = []string{"religions", "categories", "sub_categories"}

func lookupRows(s *seedFile, table string) []lookupRow {
	switch table {
	case "religions":
		return s.Religions
	case "categories":
		return s.Categories
	default:
		return s.SubCategories
	}
}

// insertLookups upserts lookup rows by id and moves each serial sequence past
// the highest imported id.
func insertLookups(ctx context.Context, tx pgx.Tx, s *seedFile) (int, error) {
	total := 0

	for _, table := range lookupTables {
		rows := lookupRows(s, table)
		if len(rows) == 0 {
			continue
		}

		batch := &pgx.Batch{}

		for _, r := range rows {
			if table == "sub_categories" {
				batch.Queue(`INSERT INTO sub_categories (id, category_id, name) VALUES ($1, $2, $3)
					ON CONFLICT (id) DO UPDATE SET category_id = EXCLUDED.category_id, name = EXCLUDED.name`,
					r.ID, r.CategoryID, r.Name)
			} else {
				batch.Queue(fmt.Sprintf(`INSERT INTO %s (id, name) VALUES ($1, $2)
					ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, table), r.ID, r.Name)
			}
		}

		batch.Queue(fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'),
			GREATEST((SELECT MAX(id) FROM %[1]s), 1))`, table))

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return total, fmt.Errorf("insert %s: %w", table, err)
		}

		total += len(rows)
	}

	return total, nil
}

// insertPersons upserts every seed person.
func insertPersons(ctx context.Context, tx pgx.Tx, persons []seedPerson) error {
	batch := &pgx.Batch{}

	for _, p := range persons {
		batch.Queue(`INSERT INTO persons (id, first_name, last_name, birth_year, death_year,
				gender_id, religion_id, category_id, sub_category_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
				birth_year = EXCLUDED.birth_year, death_year = EXCLUDED.death_year,
				gender_id = EXCLUDED.gender_id, religion_id = EXCLUDED.religion_id,
				category_id = EXCLUDED.category_id, sub_category_id = EXCLUDED.sub_category_id,
				updated_at = now()`,
			p.ID, p.FirstName, p.LastName, p.BirthYear, p.DeathYear,
			p.GenderID, p.ReligionID, p.CategoryID, p.SubCategoryID)
	}

	return tx.SendBatch(ctx, batch).Close()
}

// insertRelationships inserts relationships, ignoring ones already stored.
// It returns how many rows were new.
func insertRelationships(ctx context.Context, tx pgx.Tx, rels []relationship) (int, error) {
	batch := &pgx.Batch{}

	for _, r := range rels {
		batch.Queue(`INSERT INTO relationships (from_person_id, to_person_id, relationship_type)
			VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, r.From, r.To, r.Type.String())
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0

	for range rels {
		tag, err := br.Exec()
		if err != nil {
			return inserted, err
		}

		inserted += int(tag.RowsAffected())
	}

	return inserted, br.Close()
}

// countPersons reports how many of ids exist after the import.
func countPersons(ctx context.Context, tx pgx.Tx, ids []string) (int, error) {
	var n int
	err := tx.QueryRow(ctx, `SELECT count(*) FROM persons WHERE id = ANY($1)`, ids).Scan(&n)

	return n, err
}
