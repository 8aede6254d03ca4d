// Package domain defines the canonical service interfaces shared across API
// layers (REST, WebSocket). Consumers should depend on these interfaces
// rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/kindredgraph/kindred/internal/models"
)

// FamilyService builds the immediate-family view of one person.
type FamilyService interface {
	FamilyView(ctx context.Context, personID string) (*models.FamilyView, error)
}

// PathService finds the shortest relationship path between two persons.
// An unreachable target is reported with Connected false, not as an error.
type PathService interface {
	FindPath(ctx context.Context, fromID, toID string, depth int) (*models.PathResult, error)
}

// MatchService runs a partner-match search from a root person.
// The request must already be validated.
type MatchService interface {
	Search(ctx context.Context, req models.MatchSearchRequest) (*models.MatchResult, error)
}
