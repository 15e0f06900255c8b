package library

import (
	"path/filepath"
	"time"

	"soundvault/internal/identity"
)

// Source tells where a sound's content lives. Local sounds always have a
// resolvable path; remote sounds have no local path until cached.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// SoundMetadata is the persisted record describing one sound.
type SoundMetadata struct {
	ID          string
	Name        string
	Source      Source
	Tags        []string
	Description string
	Duration    float64
	License     string
	// Path is set iff the asset is materialized locally.
	Path string
	// RemoteID is the handle into the external catalog, set iff the sound
	// came from there.
	RemoteID  *int64
	Custom    map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetCustom stores a custom metadata value.
func (m *SoundMetadata) SetCustom(key, value string) {
	if m.Custom == nil {
		m.Custom = make(map[string]string)
	}
	m.Custom[key] = value
}

// GetCustom returns a custom metadata value.
func (m *SoundMetadata) GetCustom(key string) (string, bool) {
	value, ok := m.Custom[key]
	return value, ok
}

// Sound is the read model wrapping SoundMetadata with content information.
// It is derived on every read and never persisted directly.
type Sound struct {
	Metadata SoundMetadata
	// PreviewURL is a file URL for local sounds; for remote sounds it is
	// supplied by the remote collaborator and left empty here.
	PreviewURL string
	// IsCached reports whether a local copy is expected to exist.
	IsCached bool
	// DownloadURL is populated only for remote sounds lacking a local copy.
	DownloadURL string
}

func resolveSound(meta SoundMetadata) Sound {
	sound := Sound{Metadata: meta, IsCached: meta.Path != ""}
	switch meta.Source {
	case SourceLocal:
		if meta.Path != "" {
			sound.PreviewURL = "file://" + filepath.ToSlash(meta.Path)
		}
	case SourceRemote:
		// Preview and download URLs for remote sounds come from the
		// remote collaborator, not from the metadata store.
	}
	return sound
}

// Collection groups sounds under a name. Membership is a set; SoundIDs keeps
// insertion order for display but duplicates are never stored.
type Collection struct {
	ID          string
	Name        string
	Description string
	SoundIDs    []string
	Custom      map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCollection returns an empty collection with a fresh identifier.
func NewCollection(name, description string) Collection {
	return Collection{
		ID:          identity.New(),
		Name:        name,
		Description: description,
	}
}

// AddSound records a member, ignoring duplicates.
func (c *Collection) AddSound(soundID string) {
	if c.ContainsSound(soundID) {
		return
	}
	c.SoundIDs = append(c.SoundIDs, soundID)
}

// RemoveSound drops a member if present.
func (c *Collection) RemoveSound(soundID string) {
	kept := c.SoundIDs[:0]
	for _, id := range c.SoundIDs {
		if id != soundID {
			kept = append(kept, id)
		}
	}
	c.SoundIDs = kept
}

// ContainsSound reports membership.
func (c *Collection) ContainsSound(soundID string) bool {
	for _, id := range c.SoundIDs {
		if id == soundID {
			return true
		}
	}
	return false
}

// SetCustom stores a custom metadata value.
func (c *Collection) SetCustom(key, value string) {
	if c.Custom == nil {
		c.Custom = make(map[string]string)
	}
	c.Custom[key] = value
}

// GetCustom returns a custom metadata value.
func (c *Collection) GetCustom(key string) (string, bool) {
	value, ok := c.Custom[key]
	return value, ok
}
