// Package testsupport provides shared helpers for package tests: temp-dir
// configs, store and vault constructors with registered cleanup, and sample
// sound files.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"soundvault/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
// The library directory is created so validation passes.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Vault.LibraryDir = filepath.Join(base, "library")
	cfg.Vault.DatabasePath = filepath.Join(base, "soundvault.db")

	if err := os.MkdirAll(cfg.Vault.LibraryDir, 0o755); err != nil {
		t.Fatalf("create library dir: %v", err)
	}
	return &cfg
}
