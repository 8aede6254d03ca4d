package cache

import "context"

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() *NullCache { return &NullCache{} }

// Get always reports a miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (NullCache) Set(context.Context, string, []byte) error { return nil }

// Purge does nothing.
func (NullCache) Purge(context.Context) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }
