// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/kindredgraph/kindred/internal/cache"
	"github.com/kindredgraph/kindred/internal/db"
	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/metrics"
)

// NeighborhoodStore is the data-access interface Loader depends on.
type NeighborhoodStore interface {
	Neighborhood(ctx context.Context, rootID string, hops int) (*kinship.Snapshot, error)
	GetPerson(ctx context.Context, personID string) (*kinship.Person, error)
}

// SnapshotLoader is what the feature services need from Loader.
type SnapshotLoader interface {
	Load(ctx context.Context, rootID string, hops int) (*kinship.Snapshot, error)
	Person(ctx context.Context, personID string) (*kinship.Person, error)
}

// Compile-time checks.
var (
	_ SnapshotLoader = (*Loader)(nil)
	_ db.ChangeSink  = (*Loader)(nil)
)

// Loader fetches neighborhood snapshots through a cache. Concurrent requests
// for the same root and depth share one database read.
type Loader struct {
	store NeighborhoodStore
	cache cache.Cache
	group singleflight.Group
	log   *logrus.Logger
}

// NewLoader creates a Loader. A nil cache disables caching.
func NewLoader(store NeighborhoodStore, c cache.Cache, log *logrus.Logger) *Loader {
	if c == nil {
		c = cache.NewNullCache()
	}

	return &Loader{store: store, cache: c, log: log}
}

func snapshotKey(rootID string, hops int) string {
	return fmt.Sprintf("snapshot:%d:%s", hops, rootID)
}

// Load returns the snapshot of everything within hops of rootID.
func (l *Loader) Load(ctx context.Context, rootID string, hops int) (*kinship.Snapshot, error) {
	key := snapshotKey(rootID, hops)

	if snap, ok := l.cached(ctx, key); ok {
		metrics.SnapshotCache.WithLabelValues("hit").Inc()

		return snap, nil
	}

	metrics.SnapshotCache.WithLabelValues("miss").Inc()

	// The shared fetch must not die with whichever caller started it.
	ch := l.group.DoChan(key, func() (any, error) {
		return l.fetch(context.WithoutCancel(ctx), rootID, hops, key)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(*kinship.Snapshot), nil //nolint:forcetypeassert // fetch only returns snapshots.
	}
}

// Person returns a single person's attributes without touching the cache.
func (l *Loader) Person(ctx context.Context, personID string) (*kinship.Person, error) {
	return l.store.GetPerson(ctx, personID)
}

// OnGraphChange drops every cached snapshot. A change to one person can
// alter the neighborhood of any root within the cached depths.
func (l *Loader) OnGraphChange(ctx context.Context, c db.Change) {
	if err := l.cache.Purge(ctx); err != nil {
		l.log.WithError(err).Warn("purging snapshot cache")

		return
	}

	l.log.WithFields(logrus.Fields{
		"table":   c.Table,
		"op":      c.Op,
		"persons": len(c.PersonIDs),
	}).Debug("snapshot cache purged")
}

func (l *Loader) cached(ctx context.Context, key string) (*kinship.Snapshot, bool) {
	data, ok, err := l.cache.Get(ctx, key)
	if err != nil {
		l.log.WithError(err).WithField("key", key).Warn("snapshot cache read failed")

		return nil, false
	}

	if !ok {
		return nil, false
	}

	var snap kinship.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		l.log.WithError(err).WithField("key", key).Warn("discarding undecodable cached snapshot")

		return nil, false
	}

	return &snap, true
}

func (l *Loader) fetch(ctx context.Context, rootID string, hops int, key string) (*kinship.Snapshot, error) {
	snap, err := l.store.Neighborhood(ctx, rootID, hops)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		l.log.WithError(err).WithField("key", key).Warn("encoding snapshot for cache")

		return snap, nil
	}

	if err := l.cache.Set(ctx, key, data); err != nil {
		l.log.WithError(err).WithField("key", key).Warn("snapshot cache write failed")
	}

	return snap, nil
}
