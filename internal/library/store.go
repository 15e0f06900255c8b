package library

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"soundvault/internal/config"
	"soundvault/internal/faults"
)

// Store manages metadata persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the vault database and applies migrations.
// Opening an already initialized database is safe; migrations are idempotent.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, faults.Wrap(faults.ErrFileSystem, "library", "open", "ensure directories", err)
	}

	dbPath := cfg.Vault.DatabasePath
	// Pragmas ride on the DSN so every pooled connection carries them; a
	// plain Exec would configure only whichever connection served it and
	// leave the rest of the pool writing with busy_timeout=0.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, faults.Wrap(faults.ErrDatabase, "library", "open", "open sqlite db "+dbPath, err)
	}
	db.SetMaxOpenConns(cfg.Vault.MaxConnections)

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
