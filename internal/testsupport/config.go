// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"lectern/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "processed")
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithAlbum sets the album tag on the test config.
func WithAlbum(album string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Tags.Album = album
	}
}

// WithBitrate sets the encode bitrate on the test config.
func WithBitrate(kbps int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Encode.BitrateKbps = kbps
	}
}
