package library

import (
	"context"
	"embed"
	"sort"
	"strings"

	"soundvault/internal/faults"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

type migration struct {
	version string
	sql     string
}

func loadMigrations() ([]migration, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, faults.Wrap(faults.ErrDatabase, "library", "migrate", "read migrations dir", err)
	}
	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		versions = append(versions, entry.Name())
	}
	sort.Strings(versions)

	migrations := make([]migration, 0, len(versions))
	for _, name := range versions {
		data, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return nil, faults.Wrap(faults.ErrDatabase, "library", "migrate", "read migration "+name, err)
		}
		version := strings.TrimSuffix(name, ".sql")
		migrations = append(migrations, migration{version: version, sql: string(data)})
	}
	return migrations, nil
}

func (s *Store) applyMigrations(ctx context.Context) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "migrate", "begin migration tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "migrate", "ensure schema_migrations", err)
	}

	for _, migration := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", migration.version)
		if err := row.Scan(&count); err != nil {
			return faults.Wrap(faults.ErrDatabase, "library", "migrate", "scan migration version", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, migration.sql); err != nil {
			return faults.Wrap(faults.ErrDatabase, "library", "migrate", "apply migration "+migration.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", migration.version); err != nil {
			return faults.Wrap(faults.ErrDatabase, "library", "migrate", "record migration "+migration.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "migrate", "commit migrations", err)
	}
	return nil
}
