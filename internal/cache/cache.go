// Package cache stores serialized relationship snapshots between requests.
//
// Three backends share one interface: Redis for deployments with several
// replicas, an in-process expiring LRU for a single instance, and a no-op
// cache when caching is disabled. All values are opaque bytes.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrInvalidURL is returned when the Redis URL cannot be parsed.
var ErrInvalidURL = errors.New("invalid cache url")

// Cache is a byte-oriented key/value store with a fixed per-entry TTL.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
	// Purge drops every entry written by this cache.
	Purge(ctx context.Context) error
	Close() error
}

// Options selects and sizes a backend.
type Options struct {
	RedisURL string
	Size     int
	TTL      time.Duration
	Prefix   string
}

// New returns a Redis cache when RedisURL is set, an in-memory cache when
// Size is positive, and a NullCache otherwise.
func New(ctx context.Context, opts Options, log *logrus.Logger) (Cache, error) {
	switch {
	case opts.RedisURL != "":
		c, err := NewRedisCache(ctx, opts.RedisURL, opts.Prefix, opts.TTL)
		if err != nil {
			return nil, err
		}

		log.WithField("ttl", opts.TTL).Info("snapshot cache: redis")

		return c, nil
	case opts.Size > 0:
		log.WithFields(logrus.Fields{"size": opts.Size, "ttl": opts.TTL}).Info("snapshot cache: in-memory")

		return NewMemoryCache(opts.Size, opts.TTL), nil
	default:
		log.Info("snapshot cache: disabled")

		return NewNullCache(), nil
	}
}
