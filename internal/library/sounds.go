package library

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"soundvault/internal/faults"
	"soundvault/internal/identity"
)

const (
	objectTypeSound      = "sound"
	objectTypeCollection = "collection"
)

const soundColumns = "id, name, description, tags, duration, license, path, remote_id, created_at, updated_at"

// UpsertSound inserts or replaces the sound row identified by meta.ID and
// replaces every custom-metadata row keyed to it. Callers supply the full
// custom map they want persisted; there is no partial merge. UpdatedAt is
// assigned on write.
func (s *Store) UpsertSound(ctx context.Context, meta *SoundMetadata) error {
	if meta == nil {
		return faults.Wrap(faults.ErrInvalidOperation, "library", "upsert sound", "metadata is nil", nil)
	}
	if strings.TrimSpace(meta.ID) == "" {
		return faults.Wrap(faults.ErrInvalidOperation, "library", "upsert sound", "identifier is empty", nil)
	}
	if err := identity.Validate(meta.ID); err != nil {
		return err
	}
	if strings.TrimSpace(meta.Name) == "" {
		return faults.Wrap(faults.ErrInvalidOperation, "library", "upsert sound", "name is empty", nil)
	}

	encodedTags, err := encodeTags(meta.Tags)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "upsert sound", "begin tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Preserve created_at across replaces; INSERT OR REPLACE would reset it.
	created := timestamp
	var existingCreated string
	err = tx.QueryRowContext(ctx, `SELECT created_at FROM sounds WHERE id = ?`, meta.ID).Scan(&existingCreated)
	switch {
	case err == nil:
		created = existingCreated
	case errors.Is(err, sql.ErrNoRows):
	default:
		return faults.Wrap(faults.ErrDatabase, "library", "upsert sound", "read created_at", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO sounds
         (id, name, description, tags, duration, license, path, remote_id, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID,
		meta.Name,
		nullableString(meta.Description),
		encodedTags,
		meta.Duration,
		nullableString(meta.License),
		nullableString(meta.Path),
		nullableInt64(meta.RemoteID),
		created,
		timestamp,
	)
	if err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "upsert sound", "write row", err)
	}

	if err := replaceCustom(ctx, tx, meta.ID, objectTypeSound, meta.Custom); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "upsert sound", "commit", err)
	}

	if parsed, err := parseTimeString(created); err == nil {
		meta.CreatedAt = parsed
	}
	meta.UpdatedAt = now
	return nil
}

// GetSound fetches a sound by identifier and derives its read model.
func (s *Store) GetSound(ctx context.Context, id string) (Sound, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+soundColumns+` FROM sounds WHERE id = ?`, id)
	meta, err := scanSoundMetadata(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Sound{}, faults.Wrap(faults.ErrNotFound, "library", "get sound", id, nil)
	}
	if err != nil {
		return Sound{}, faults.Wrap(faults.ErrDatabase, "library", "get sound", id, err)
	}

	custom, err := s.loadCustom(ctx, id, objectTypeSound)
	if err != nil {
		return Sound{}, err
	}
	meta.Custom = custom

	return resolveSound(meta), nil
}

// ListSounds returns every sound in the vault ordered by name, identifier
// tie-break.
func (s *Store) ListSounds(ctx context.Context) ([]Sound, error) {
	ids, err := s.collectIDs(ctx, `SELECT id FROM sounds`)
	if err != nil {
		return nil, faults.Wrap(faults.ErrDatabase, "library", "list sounds", "", err)
	}
	sounds := make([]Sound, 0, len(ids))
	for _, id := range ids {
		sound, err := s.GetSound(ctx, id)
		if err != nil {
			return nil, err
		}
		sounds = append(sounds, sound)
	}
	sortSounds(sounds)
	return sounds, nil
}

// DeleteSound removes the sound row, its custom-metadata rows, and every
// collection-membership row referencing it, in one transaction. The asset
// file is the caller's responsibility and must be removed first. Deleting an
// absent sound is a no-op.
func (s *Store) DeleteSound(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "delete sound", "begin tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection_members WHERE sound_id = ?`, id); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "delete sound", "delete memberships", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM metadata WHERE object_id = ? AND object_type = ?`, id, objectTypeSound); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "delete sound", "delete custom metadata", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sounds WHERE id = ?`, id); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "delete sound", "delete row", err)
	}

	if err := tx.Commit(); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "delete sound", "commit", err)
	}
	return nil
}

func scanSoundMetadata(scanner interface{ Scan(dest ...any) error }) (SoundMetadata, error) {
	var (
		id          string
		name        string
		description sql.NullString
		tagsRaw     sql.NullString
		duration    sql.NullFloat64
		license     sql.NullString
		path        sql.NullString
		remoteID    sql.NullInt64
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&name,
		&description,
		&tagsRaw,
		&duration,
		&license,
		&path,
		&remoteID,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return SoundMetadata{}, err
	}

	meta := SoundMetadata{
		ID:          id,
		Name:        name,
		Description: description.String,
		Tags:        decodeTags(tagsRaw.String),
		Duration:    duration.Float64,
		License:     license.String,
		Path:        path.String,
	}
	if remoteID.Valid {
		value := remoteID.Int64
		meta.RemoteID = &value
	}

	// The source variant is not a stored column; it is derived from how the
	// record is materialized. Anything without a local copy that carries a
	// remote handle is a remote sound.
	if meta.Path == "" && meta.RemoteID != nil {
		meta.Source = SourceRemote
	} else {
		meta.Source = SourceLocal
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		meta.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		meta.UpdatedAt = updated
	}
	return meta, nil
}

func (s *Store) loadCustom(ctx context.Context, id, objectType string) (map[string]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT key, value FROM metadata WHERE object_id = ? AND object_type = ?`,
		id, objectType,
	)
	if err != nil {
		return nil, faults.Wrap(faults.ErrDatabase, "library", "load custom metadata", id, err)
	}
	defer rows.Close()

	custom := make(map[string]string)
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, faults.Wrap(faults.ErrDatabase, "library", "load custom metadata", id, err)
		}
		custom[key] = value.String
	}
	if err := rows.Err(); err != nil {
		return nil, faults.Wrap(faults.ErrDatabase, "library", "load custom metadata", id, err)
	}
	return custom, nil
}

func replaceCustom(ctx context.Context, tx *sql.Tx, id, objectType string, custom map[string]string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM metadata WHERE object_id = ? AND object_type = ?`, id, objectType); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "replace custom metadata", id, err)
	}
	for key, value := range custom {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO metadata (object_id, object_type, key, value) VALUES (?, ?, ?, ?)`,
			id, objectType, key, value,
		); err != nil {
			return faults.Wrap(faults.ErrDatabase, "library", "replace custom metadata", id, err)
		}
	}
	return nil
}

func (s *Store) collectIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt64(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
