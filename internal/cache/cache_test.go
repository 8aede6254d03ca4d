package cache

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

func TestMemoryCache_GetSetPurge(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2, time.Minute)

	_, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", []byte("1")))
	require.NoError(t, c.Set(ctx, "b", []byte("2")))

	got, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), got)

	// "b" is now least recently used and is evicted by "c".
	require.NoError(t, c.Set(ctx, "c", []byte("3")))

	_, ok, _ = c.Get(ctx, "b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Purge(ctx))
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(4, 20*time.Millisecond)

	require.NoError(t, c.Set(ctx, "k", []byte("v")))

	assert.Eventually(t, func() bool {
		_, ok, _ := c.Get(ctx, "k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, Options{Size: 8, TTL: time.Minute}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = New(ctx, Options{}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &NullCache{}, c)

	_, err = New(ctx, Options{RedisURL: "://bad"}, quietLogger())
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()

	c, err := NewRedisCache(ctx, url, "kindred-test:", time.Minute)
	require.NoError(t, err)

	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Set(ctx, "k", []byte("v")))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Purge(ctx))

	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
