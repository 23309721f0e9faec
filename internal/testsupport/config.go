// Package testsupport provides shared helpers for package tests: temp-dir
// configs and database setup with registered cleanup.
package testsupport

import (
	"path/filepath"
	"testing"

	"lotflow/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Notifications.NtfyTopic = ""

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithNtfyTopic sets the push topic on the test config.
func WithNtfyTopic(topic string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Notifications.NtfyTopic = topic
	}
}

// WithLocation appends a catalog entry to the test config.
func WithLocation(loc config.Location) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Locations.Catalog = append(cfg.Locations.Catalog, loc)
	}
}
