package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is a bounded in-process cache. Entries expire after the TTL
// and the least recently used entry is evicted when the cache is full.
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryCache creates a MemoryCache holding at most size entries.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, ok := c.lru.Get(key)

	return data, ok, nil
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte) error {
	c.lru.Add(key, data)

	return nil
}

// Purge implements Cache.
func (c *MemoryCache) Purge(_ context.Context) error {
	c.lru.Purge()

	return nil
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int { return c.lru.Len() }

// Close implements Cache.
func (c *MemoryCache) Close() error { return nil }
