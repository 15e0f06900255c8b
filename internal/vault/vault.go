package vault

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"soundvault/internal/assets"
	"soundvault/internal/collections"
	"soundvault/internal/config"
	"soundvault/internal/faults"
	"soundvault/internal/library"
	"soundvault/internal/logging"
	"soundvault/internal/remote"
)

// Vault composes the asset store, the metadata store, the collection
// manager, and the optional remote catalog client behind one entry point. A
// constructed Vault is always ready; any failure during construction returns
// no instance.
type Vault struct {
	cfg         *config.Config
	logger      *slog.Logger
	assets      *assets.Store
	library     *library.Store
	collections *collections.Manager
	remote      *remote.Client
	lock        *flock.Flock
}

// New validates the configuration, locks the library against other
// processes, opens the metadata store (running migrations), and wires the
// components together.
func New(cfg *config.Config, logger *slog.Logger) (*Vault, error) {
	if cfg == nil {
		return nil, faults.Wrap(faults.ErrInvalidOperation, "vault", "new", "config is nil", nil)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, faults.Wrap(faults.ErrFileSystem, "vault", "new", "ensure directories", err)
	}

	// The vault is a single-process store. The lock file turns concurrent
	// multi-process access into an explicit startup failure.
	lock := flock.New(filepath.Join(cfg.Vault.LibraryDir, "soundvault.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrFileSystem, "vault", "new", "acquire lock", err)
	}
	if !ok {
		return nil, faults.Wrap(faults.ErrInvalidOperation, "vault", "new", "library is locked by another process", nil)
	}

	store, err := library.Open(cfg)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	v := &Vault{
		cfg:         cfg,
		logger:      logger,
		assets:      assets.NewStore(cfg.Vault.LibraryDir),
		library:     store,
		collections: collections.NewManager(store, logger),
		lock:        lock,
	}
	if strings.TrimSpace(cfg.Remote.APIKey) != "" {
		v.remote = remote.NewClient(cfg.Remote.APIKey, cfg.Vault.LibraryDir)
	}

	logger.Info("vault ready",
		"library_dir", cfg.Vault.LibraryDir,
		"database", store.Path(),
		"remote_enabled", v.remote != nil,
	)
	return v, nil
}

// Close releases the metadata store and the library lock.
func (v *Vault) Close() error {
	if v == nil {
		return nil
	}
	err := v.library.Close()
	if v.lock != nil {
		if unlockErr := v.lock.Unlock(); unlockErr != nil && err == nil {
			err = faults.Wrap(faults.ErrFileSystem, "vault", "close", "release lock", unlockErr)
		}
	}
	return err
}

// Library exposes the metadata store for direct queries.
func (v *Vault) Library() *library.Store {
	return v.library
}

// Collections exposes the collection manager.
func (v *Vault) Collections() *collections.Manager {
	return v.collections
}

// Remote returns the catalog client, or nil when no API key is configured.
func (v *Vault) Remote() *remote.Client {
	return v.remote
}

// ImportFile copies a file into the library and persists its metadata. The
// file is written before the row so an interruption leaves at worst an
// orphaned directory, never a row pointing at nothing. When meta is nil a
// minimal record is derived from the file itself.
func (v *Vault) ImportFile(ctx context.Context, sourcePath string, meta *library.SoundMetadata) (string, error) {
	id, storedPath, err := v.assets.Place(sourcePath, "")
	if err != nil {
		return "", err
	}

	var record library.SoundMetadata
	if meta != nil {
		record = *meta
	}
	record.ID = id
	record.Source = library.SourceLocal
	record.Path = storedPath
	if strings.TrimSpace(record.Name) == "" {
		record.Name = filepath.Base(storedPath)
	}
	if strings.TrimSpace(record.License) == "" {
		record.License = "Unknown"
	}

	if err := v.library.UpsertSound(ctx, &record); err != nil {
		// Undo the placement so a failed import does not strand a file.
		if rmErr := v.assets.Remove(storedPath); rmErr != nil {
			v.logger.Warn("orphaned asset after failed import",
				"sound_id", id, "path", storedPath, "kind", faults.Kind(err), "error", rmErr)
		}
		return "", err
	}

	v.logger.Info("sound imported", "sound_id", id, "name", record.Name, "path", storedPath)
	return id, nil
}

// GetSound returns a sound by identifier.
func (v *Vault) GetSound(ctx context.Context, id string) (library.Sound, error) {
	return v.library.GetSound(ctx, id)
}

// ListSounds returns every sound in the vault.
func (v *Vault) ListSounds(ctx context.Context) ([]library.Sound, error) {
	return v.library.ListSounds(ctx)
}

// Search returns sounds matching a free-text query and tag filter.
func (v *Vault) Search(ctx context.Context, text string, tags []string) ([]library.Sound, error) {
	return v.library.Search(ctx, text, tags)
}

// UpdateSound applies a read-modify-write update to a sound's metadata. The
// identifier is immutable; changes to it by the updater are discarded.
func (v *Vault) UpdateSound(ctx context.Context, id string, update func(*library.SoundMetadata)) error {
	if update == nil {
		return faults.Wrap(faults.ErrInvalidOperation, "vault", "update sound", "updater is nil", nil)
	}
	sound, err := v.library.GetSound(ctx, id)
	if err != nil {
		return err
	}
	meta := sound.Metadata
	update(&meta)
	meta.ID = id
	return v.library.UpsertSound(ctx, &meta)
}

// DeleteSound removes a sound's asset directory and all of its rows. The
// directory is removed before the rows so a crash mid-way leaves an orphaned
// file at worst; a dangling metadata row is never left behind.
func (v *Vault) DeleteSound(ctx context.Context, id string) error {
	sound, err := v.library.GetSound(ctx, id)
	if err != nil {
		return err
	}

	if path := sound.Metadata.Path; path != "" {
		if err := v.assets.Remove(path); err != nil {
			return err
		}
	}

	if err := v.library.DeleteSound(ctx, id); err != nil {
		return err
	}
	v.logger.Info("sound deleted", "sound_id", id)
	return nil
}

// CreateCollection persists a new collection.
func (v *Vault) CreateCollection(ctx context.Context, col *library.Collection) (string, error) {
	return v.collections.Create(ctx, col)
}

// GetCollection returns a collection by identifier.
func (v *Vault) GetCollection(ctx context.Context, id string) (library.Collection, error) {
	return v.collections.Get(ctx, id)
}

// ListCollections returns every collection.
func (v *Vault) ListCollections(ctx context.Context) ([]library.Collection, error) {
	return v.collections.List(ctx)
}

// DeleteCollection removes a collection without touching its member sounds.
func (v *Vault) DeleteCollection(ctx context.Context, id string) error {
	return v.collections.Delete(ctx, id)
}

// AddSoundToCollection records a membership after checking both sides exist.
func (v *Vault) AddSoundToCollection(ctx context.Context, soundID, collectionID string) error {
	return v.collections.AddSound(ctx, soundID, collectionID)
}

// RemoveSoundFromCollection drops a membership.
func (v *Vault) RemoveSoundFromCollection(ctx context.Context, soundID, collectionID string) error {
	return v.collections.RemoveSound(ctx, soundID, collectionID)
}

// CollectionSounds resolves the sounds belonging to a collection.
func (v *Vault) CollectionSounds(ctx context.Context, collectionID string) ([]library.Sound, error) {
	return v.collections.ListSounds(ctx, collectionID)
}
