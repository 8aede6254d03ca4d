package config

// Version is the kindred binary version, set at build time via
// -ldflags "-X github.com/kindredgraph/kindred/internal/config.Version=<tag>".
var Version = "dev"
