// Package collections orchestrates the many-to-many association between
// sounds and collections on top of the metadata store.
package collections

import (
	"context"
	"log/slog"
	"strings"

	"soundvault/internal/faults"
	"soundvault/internal/identity"
	"soundvault/internal/library"
	"soundvault/internal/logging"
)

// Manager enforces the cross-entity integrity checks the schema does not:
// membership writes resolve both sides first so a dangling reference is
// reported as NotFound instead of a bare constraint violation.
type Manager struct {
	store  *library.Store
	logger *slog.Logger
}

// NewManager constructs a manager bound to the metadata store. A nil logger
// is replaced with a no-op logger.
func NewManager(store *library.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{store: store, logger: logger}
}

// Create persists a collection, assigning an identifier when the caller has
// not. Pre-populated member identifiers must resolve to existing sounds.
func (m *Manager) Create(ctx context.Context, col *library.Collection) (string, error) {
	if col == nil {
		return "", faults.Wrap(faults.ErrInvalidOperation, "collections", "create", "collection is nil", nil)
	}
	if strings.TrimSpace(col.ID) == "" {
		col.ID = identity.New()
	}
	for _, soundID := range col.SoundIDs {
		if _, err := m.store.GetSound(ctx, soundID); err != nil {
			return "", err
		}
	}
	if err := m.store.UpsertCollection(ctx, col); err != nil {
		return "", err
	}
	m.logger.Info("collection created", "collection_id", col.ID, "name", col.Name, "members", len(col.SoundIDs))
	return col.ID, nil
}

// Save persists changes to an existing collection.
func (m *Manager) Save(ctx context.Context, col *library.Collection) error {
	if col == nil {
		return faults.Wrap(faults.ErrInvalidOperation, "collections", "save", "collection is nil", nil)
	}
	for _, soundID := range col.SoundIDs {
		if _, err := m.store.GetSound(ctx, soundID); err != nil {
			return err
		}
	}
	return m.store.UpsertCollection(ctx, col)
}

// Get returns a collection by identifier.
func (m *Manager) Get(ctx context.Context, id string) (library.Collection, error) {
	return m.store.GetCollection(ctx, id)
}

// List returns every collection.
func (m *Manager) List(ctx context.Context) ([]library.Collection, error) {
	return m.store.ListCollections(ctx)
}

// Delete removes a collection and its membership rows. Member sounds are
// untouched.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.DeleteCollection(ctx, id); err != nil {
		return err
	}
	m.logger.Info("collection deleted", "collection_id", id)
	return nil
}

// AddSound records a membership after resolving both the sound and the
// collection; either missing side propagates as NotFound. Re-adding an
// existing member is not an error.
func (m *Manager) AddSound(ctx context.Context, soundID, collectionID string) error {
	if _, err := m.store.GetSound(ctx, soundID); err != nil {
		return err
	}
	if _, err := m.store.GetCollection(ctx, collectionID); err != nil {
		return err
	}
	return m.store.AddMember(ctx, collectionID, soundID)
}

// RemoveSound drops a membership. Removing an absent member is not an error,
// and membership in other collections is unaffected.
func (m *Manager) RemoveSound(ctx context.Context, soundID, collectionID string) error {
	return m.store.RemoveMember(ctx, collectionID, soundID)
}

// ListSounds resolves every member of a collection. A member whose sound row
// has vanished is skipped with a warning rather than failing the whole
// listing.
func (m *Manager) ListSounds(ctx context.Context, collectionID string) ([]library.Sound, error) {
	col, err := m.store.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	sounds := make([]library.Sound, 0, len(col.SoundIDs))
	for _, soundID := range col.SoundIDs {
		sound, err := m.store.GetSound(ctx, soundID)
		if err != nil {
			if faults.IsNotFound(err) {
				m.logger.Warn("collection references missing sound", "collection_id", collectionID, "sound_id", soundID)
				continue
			}
			return nil, err
		}
		sounds = append(sounds, sound)
	}
	return sounds, nil
}

// SetCustom sets one custom metadata key on a collection and persists the
// full record.
func (m *Manager) SetCustom(ctx context.Context, collectionID, key, value string) error {
	col, err := m.store.GetCollection(ctx, collectionID)
	if err != nil {
		return err
	}
	col.SetCustom(key, value)
	return m.store.UpsertCollection(ctx, &col)
}
