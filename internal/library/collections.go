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

// UpsertCollection inserts or replaces the collection row identified by
// col.ID, replaces its custom-metadata rows, and syncs its membership rows
// to col.SoundIDs. Member identifiers are not existence-checked here; the
// collection manager performs that check at the API boundary.
func (s *Store) UpsertCollection(ctx context.Context, col *Collection) error {
	if col == nil {
		return faults.Wrap(faults.ErrInvalidOperation, "library", "upsert collection", "collection is nil", nil)
	}
	if strings.TrimSpace(col.ID) == "" {
		return faults.Wrap(faults.ErrInvalidOperation, "library", "upsert collection", "identifier is empty", nil)
	}
	if err := identity.Validate(col.ID); err != nil {
		return err
	}
	if strings.TrimSpace(col.Name) == "" {
		return faults.Wrap(faults.ErrInvalidOperation, "library", "upsert collection", "name is empty", nil)
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "upsert collection", "begin tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	created := timestamp
	var existingCreated string
	err = tx.QueryRowContext(ctx, `SELECT created_at FROM collections WHERE id = ?`, col.ID).Scan(&existingCreated)
	switch {
	case err == nil:
		created = existingCreated
	case errors.Is(err, sql.ErrNoRows):
	default:
		return faults.Wrap(faults.ErrDatabase, "library", "upsert collection", "read created_at", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO collections (id, name, description, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)`,
		col.ID,
		col.Name,
		nullableString(col.Description),
		created,
		timestamp,
	)
	if err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "upsert collection", "write row", err)
	}

	if err := replaceCustom(ctx, tx, col.ID, objectTypeCollection, col.Custom); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection_members WHERE collection_id = ?`, col.ID); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "upsert collection", "clear memberships", err)
	}
	for _, soundID := range col.SoundIDs {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO collection_members (collection_id, sound_id) VALUES (?, ?)`,
			col.ID, soundID,
		); err != nil {
			return faults.Wrap(faults.ErrDatabase, "library", "upsert collection", "write membership "+soundID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "upsert collection", "commit", err)
	}

	if parsed, err := parseTimeString(created); err == nil {
		col.CreatedAt = parsed
	}
	col.UpdatedAt = now
	return nil
}

// GetCollection fetches a collection with its member identifiers and custom
// metadata.
func (s *Store) GetCollection(ctx context.Context, id string) (Collection, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, name, description, created_at, updated_at FROM collections WHERE id = ?`,
		id,
	)

	var (
		colID       string
		name        string
		description sql.NullString
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
	)
	err := row.Scan(&colID, &name, &description, &createdRaw, &updatedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return Collection{}, faults.Wrap(faults.ErrNotFound, "library", "get collection", id, nil)
	}
	if err != nil {
		return Collection{}, faults.Wrap(faults.ErrDatabase, "library", "get collection", id, err)
	}

	col := Collection{
		ID:          colID,
		Name:        name,
		Description: description.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		col.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		col.UpdatedAt = updated
	}

	members, err := s.MemberIDs(ctx, id)
	if err != nil {
		return Collection{}, err
	}
	col.SoundIDs = members

	custom, err := s.loadCustom(ctx, id, objectTypeCollection)
	if err != nil {
		return Collection{}, err
	}
	col.Custom = custom

	return col, nil
}

// ListCollections returns every collection ordered by name, identifier
// tie-break.
func (s *Store) ListCollections(ctx context.Context) ([]Collection, error) {
	ids, err := s.collectIDs(ctx, `SELECT id FROM collections`)
	if err != nil {
		return nil, faults.Wrap(faults.ErrDatabase, "library", "list collections", "", err)
	}
	collections := make([]Collection, 0, len(ids))
	for _, id := range ids {
		col, err := s.GetCollection(ctx, id)
		if err != nil {
			return nil, err
		}
		collections = append(collections, col)
	}
	sortCollections(collections)
	return collections, nil
}

// DeleteCollection removes the collection row, its custom-metadata rows, and
// its membership rows. Member sounds are untouched. Deleting an absent
// collection is a no-op.
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "delete collection", "begin tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection_members WHERE collection_id = ?`, id); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "delete collection", "delete memberships", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM metadata WHERE object_id = ? AND object_type = ?`, id, objectTypeCollection); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "delete collection", "delete custom metadata", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "delete collection", "delete row", err)
	}

	if err := tx.Commit(); err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "delete collection", "commit", err)
	}
	return nil
}

// AddMember records a membership row. Adding an existing member is not an
// error.
func (s *Store) AddMember(ctx context.Context, collectionID, soundID string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO collection_members (collection_id, sound_id) VALUES (?, ?)`,
		collectionID, soundID,
	)
	if err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "add member", soundID+" -> "+collectionID, err)
	}
	return nil
}

// RemoveMember deletes a membership row. Removing an absent member is not an
// error.
func (s *Store) RemoveMember(ctx context.Context, collectionID, soundID string) error {
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM collection_members WHERE collection_id = ? AND sound_id = ?`,
		collectionID, soundID,
	)
	if err != nil {
		return faults.Wrap(faults.ErrDatabase, "library", "remove member", soundID+" -> "+collectionID, err)
	}
	return nil
}

// MemberIDs returns the sound identifiers belonging to a collection in a
// deterministic order.
func (s *Store) MemberIDs(ctx context.Context, collectionID string) ([]string, error) {
	ids, err := s.collectIDs(
		ctx,
		`SELECT sound_id FROM collection_members WHERE collection_id = ? ORDER BY sound_id`,
		collectionID,
	)
	if err != nil {
		return nil, faults.Wrap(faults.ErrDatabase, "library", "member ids", collectionID, err)
	}
	return ids, nil
}
