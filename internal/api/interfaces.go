package api

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// DatabaseChecker is the database access the health endpoints need.
// *dbpool.Pool satisfies it.
type DatabaseChecker interface {
	HealthCheck(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Stat() (acquired, total int32)
}

// ClientCounter reports connected WebSocket clients. *ws.Hub satisfies it.
type ClientCounter interface {
	ClientCount() int
}
