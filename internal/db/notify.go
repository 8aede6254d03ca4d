package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/dbpool"
)

const (
	listenChannel     = "kindred_changes"
	initialBackoff    = 1 * time.Second
	maxBackoff        = 30 * time.Second
	backoffMultiplier = 2
)

// Change is one row-level change to persons or relationships.
type Change struct {
	Table     string   `json:"table"`
	Op        string   `json:"op"`
	PersonIDs []string `json:"person_ids"`
}

// ChangeSink reacts to graph changes, e.g. by dropping cached snapshots.
type ChangeSink interface {
	OnGraphChange(ctx context.Context, change Change)
}

// NotifyBridge subscribes to PostgreSQL LISTEN/NOTIFY on the kindred_changes
// channel and forwards each change to its sinks.
type NotifyBridge struct {
	log   *logrus.Logger
	pool  *dbpool.Pool
	sinks []ChangeSink
}

// NewNotifyBridge creates a NotifyBridge wired to the given pool and sinks.
func NewNotifyBridge(log *logrus.Logger, pool *dbpool.Pool, sinks ...ChangeSink) *NotifyBridge {
	return &NotifyBridge{log: log, pool: pool, sinks: sinks}
}

// Start verifies the database is reachable and launches the LISTEN loop in a
// background goroutine, which reconnects with backoff until ctx is cancelled.
func (b *NotifyBridge) Start(ctx context.Context) error {
	if err := b.pool.Ping(ctx); err != nil {
		return fmt.Errorf("notify bridge: database not reachable: %w", err)
	}

	go b.listen(ctx)

	return nil
}

func (b *NotifyBridge) listen(ctx context.Context) {
	backoff := initialBackoff

	for {
		if ctx.Err() != nil {
			return
		}

		err := b.subscribeAndForward(ctx)
		if err == nil || ctx.Err() != nil {
			return
		}

		b.log.WithError(err).WithField("retry_in", backoff).
			Warn("notify bridge connection lost, reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff = nextBackoff(backoff)
	}
}

func (b *NotifyBridge) subscribeAndForward(ctx context.Context) error {
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{listenChannel}.Sanitize()); err != nil {
		return fmt.Errorf("executing LISTEN: %w", err)
	}

	b.log.WithField("channel", listenChannel).Info("notify bridge listening")

	for {
		// Periodic deadline so a silent connection still observes ctx.
		if err := conn.Conn().PgConn().Conn().SetReadDeadline(time.Now().Add(2 * time.Minute)); err != nil {
			return fmt.Errorf("setting read deadline: %w", err)
		}

		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}

			return fmt.Errorf("waiting for notification: %w", err)
		}

		b.handleNotification(ctx, notification)
	}
}

func (b *NotifyBridge) handleNotification(ctx context.Context, n *pgconn.Notification) {
	var change Change
	if err := json.Unmarshal([]byte(n.Payload), &change); err != nil || change.Table == "" {
		b.log.WithField("payload", n.Payload).Warn("dropping malformed change notification")

		return
	}

	b.log.WithFields(logrus.Fields{
		"table":   change.Table,
		"op":      change.Op,
		"persons": change.PersonIDs,
	}).Debug("graph change received")

	for _, sink := range b.sinks {
		sink.OnGraphChange(ctx, change)
	}
}

// nextBackoff doubles the current backoff with ±25% jitter, capped at maxBackoff.
func nextBackoff(current time.Duration) time.Duration {
	next := min(current*backoffMultiplier, maxBackoff)

	jitter := float64(next) * (0.75 + rand.Float64()*0.5) //nolint:gosec // jitter doesn't need crypto rand.

	return time.Duration(jitter)
}
