package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/models"
)

// Neighborhood safety limits.
const (
	neighborhoodPersonLimit = 20_000 // max persons loaded for one request
	hopEdgeLimit            = 50_000 // max relationships fetched per hop
)

// RelationshipStore loads persons and relationships for the engine.
type RelationshipStore struct {
	Base
}

// NewRelationshipStore creates a RelationshipStore.
func NewRelationshipStore(base Base) *RelationshipStore {
	return &RelationshipStore{Base: base}
}

type edgeKey struct {
	from, to string
	t        kinship.RelationType
}

// Neighborhood fetches every relationship within hops of rootID, in both
// stored directions, plus the attributes of every person reached, and returns
// them as a snapshot. Relations of persons closer than hops are complete, so
// exploring the snapshot to depth hops matches exploring the full graph.
func (s *RelationshipStore) Neighborhood(ctx context.Context, rootID string, hops int) (*kinship.Snapshot, error) {
	if hops < kinship.MinDepth || hops > kinship.MaxDepth {
		return nil, fmt.Errorf("%w: got %d", kinship.ErrInvalidMaxDepth, hops)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading neighborhood: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM persons WHERE id = $1)`, rootID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking person existence: %w", err)
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s", kinship.ErrPersonNotFound, rootID)
	}

	visited := map[string]bool{rootID: true}
	frontier := []string{rootID}
	seen := make(map[edgeKey]bool)

	var edges []kinship.Edge

	neighborSQL := `SELECT ` + relationshipColumns + ` FROM relationships
		WHERE from_person_id = ANY($1) OR to_person_id = ANY($1)
		ORDER BY id LIMIT ` + strconv.Itoa(hopEdgeLimit+1)

	for hop := 0; hop < hops && len(frontier) > 0; hop++ {
		rows, err := tx.Query(ctx, neighborSQL, frontier)
		if err != nil {
			return nil, fmt.Errorf("querying relationships at hop %d: %w", hop, err)
		}

		hopEdges, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (kinship.Edge, error) {
			return scanEdge(row.Scan)
		})
		if err != nil {
			return nil, fmt.Errorf("collecting relationships at hop %d: %w", hop, err)
		}

		if len(hopEdges) > hopEdgeLimit {
			return nil, fmt.Errorf("%w: more than %d relationships at hop %d", models.ErrNeighborhoodTooLarge, hopEdgeLimit, hop)
		}

		var next []string

		for _, e := range hopEdges {
			key := edgeKey{from: e.FromPersonID, to: e.ToPersonID, t: e.Type}
			if !seen[key] {
				seen[key] = true
				edges = append(edges, e)
			}

			for _, id := range [2]string{e.FromPersonID, e.ToPersonID} {
				if !visited[id] {
					visited[id] = true
					next = append(next, id)
				}
			}
		}

		if len(visited) > neighborhoodPersonLimit {
			return nil, fmt.Errorf("%w: more than %d persons within %d hops", models.ErrNeighborhoodTooLarge, neighborhoodPersonLimit, hops)
		}

		frontier = next
	}

	ids := make([]string, 0, len(visited))
	for id := range visited {
		ids = append(ids, id)
	}

	rows, err := tx.Query(ctx, `SELECT `+personColumns+` FROM persons WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying neighborhood persons: %w", err)
	}

	persons, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (kinship.Person, error) {
		return scanPerson(row.Scan)
	})
	if err != nil {
		return nil, fmt.Errorf("collecting neighborhood persons: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing neighborhood read: %w", err)
	}

	s.Log.WithFields(logrus.Fields{
		"root":      rootID,
		"hops":      hops,
		"persons":   len(persons),
		"reached":   len(ids),
		"relations": len(edges),
	}).Debug("neighborhood loaded")

	return kinship.NewSnapshot(persons, edges)
}

// GetPerson returns a single person's attributes.
func (s *RelationshipStore) GetPerson(ctx context.Context, personID string) (*kinship.Person, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	p, err := scanPerson(s.Pool.QueryRow(ctx, `SELECT `+personColumns+` FROM persons WHERE id = $1`, personID).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", kinship.ErrPersonNotFound, personID)
		}

		return nil, fmt.Errorf("getting person: %w", err)
	}

	return &p, nil
}
