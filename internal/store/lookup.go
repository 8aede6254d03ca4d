package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kindredgraph/kindred/internal/models"
)

// LookupStore reads the lineage lookup tables.
type LookupStore struct {
	Base
}

// NewLookupStore creates a LookupStore.
func NewLookupStore(base Base) *LookupStore {
	return &LookupStore{Base: base}
}

// SubCategories returns the named sub-categories among ids, ordered by id.
// Unknown ids are omitted.
func (s *LookupStore) SubCategories(ctx context.Context, ids []int) ([]models.SubCategory, error) {
	if len(ids) == 0 {
		return []models.SubCategory{}, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT id, name, category_id FROM sub_categories WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying sub-categories: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SubCategory, error) {
		var sc models.SubCategory
		err := row.Scan(&sc.ID, &sc.Name, &sc.CategoryID)

		return sc, err
	})
	if err != nil {
		return nil, fmt.Errorf("collecting sub-categories: %w", err)
	}

	return out, nil
}
