// Package config provides environment-driven configuration for kindred.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kindredgraph/kindred/internal/kinship"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL Secret
	Port        string
	ListenHost  string
	MetricsPort string
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
	DBMaxConns  int

	// RedisURL selects the shared snapshot cache. Empty means in-process only.
	RedisURL          Secret
	SnapshotCacheSize int
	SnapshotCacheTTL  time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	DefaultMaxDepth int
	Layout          kinship.LayoutConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: Secret(envOrDefault("DATABASE_URL", "")),
		Port:        envOrDefault("PORT", "3030"),
		ListenHost:  envOrDefault("LISTEN_HOST", "127.0.0.1"),
		MetricsPort: envOrDefault("METRICS_PORT", "9091"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "text"),
		RedisURL:    Secret(envOrDefault("REDIS_URL", "")),
	}

	var err error

	if cfg.DBMaxConns, err = envInt("DB_MAX_CONNS", 21, 2, 200); err != nil {
		return nil, err
	}

	if cfg.SnapshotCacheSize, err = envInt("SNAPSHOT_CACHE_SIZE", 512, 0, 100_000); err != nil {
		return nil, err
	}

	if cfg.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", 40, 1, 10_000); err != nil {
		return nil, err
	}

	if cfg.DefaultMaxDepth, err = envInt("DEFAULT_MAX_DEPTH", 6, kinship.MinDepth, kinship.MaxDepth); err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(envOrDefault("SNAPSHOT_CACHE_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("SNAPSHOT_CACHE_TTL must be a duration such as 30s or 5m: %w", err)
	}
	cfg.SnapshotCacheTTL = ttl

	if cfg.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", 20); err != nil {
		return nil, err
	}

	if cfg.Layout, err = loadLayout(); err != nil {
		return nil, err
	}

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3002")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// MetricsAddr returns the Prometheus listen address in host:port format.
func (c *Config) MetricsAddr() string {
	return c.ListenHost + ":" + c.MetricsPort
}

func loadLayout() (kinship.LayoutConfig, error) {
	def := kinship.DefaultLayoutConfig()

	width, err := envFloat("LAYOUT_NODE_WIDTH", def.NodeWidth)
	if err != nil {
		return kinship.LayoutConfig{}, err
	}

	hgap, err := envFloat("LAYOUT_HORIZONTAL_GAP", def.HorizontalGap)
	if err != nil {
		return kinship.LayoutConfig{}, err
	}

	sgap, err := envFloat("LAYOUT_SPOUSE_GAP", def.SpouseGap)
	if err != nil {
		return kinship.LayoutConfig{}, err
	}

	return kinship.LayoutConfig{NodeWidth: width, HorizontalGap: hgap, SpouseGap: sgap}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback, lo, hi int) (int, error) {
	v, err := strconv.Atoi(envOrDefault(key, strconv.Itoa(fallback)))
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", key, lo, hi)
	}

	return v, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}

	return v, nil
}
