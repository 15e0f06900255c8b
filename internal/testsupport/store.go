package testsupport

import (
	"testing"

	"soundvault/internal/config"
	"soundvault/internal/library"
	"soundvault/internal/logging"
	"soundvault/internal/vault"
)

// MustOpenLibrary opens a library.Store for tests and registers cleanup.
func MustOpenLibrary(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustOpenVault constructs a ready vault for tests and registers cleanup.
func MustOpenVault(t testing.TB, cfg *config.Config) *vault.Vault {
	t.Helper()

	v, err := vault.New(cfg, logging.Nop())
	if err != nil {
		t.Fatalf("vault.New: %v", err)
	}
	t.Cleanup(func() {
		v.Close()
	})
	return v
}
