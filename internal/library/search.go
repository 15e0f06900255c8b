package library

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"soundvault/internal/faults"
)

// Search returns sounds matching a free-text query and a tag filter. A
// non-empty text matches as a substring of name or description; every tag in
// the filter must be an exact member of the sound's decoded tag sequence.
// Results are ordered by name ascending with identifier tie-break.
func (s *Store) Search(ctx context.Context, text string, tags []string) ([]Sound, error) {
	var conditions []string
	var params []any

	text = strings.TrimSpace(text)
	if text != "" {
		conditions = append(conditions, "(name LIKE ? OR description LIKE ?)")
		pattern := "%" + text + "%"
		params = append(params, pattern, pattern)
	}

	filter := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		filter = append(filter, tag)
		// Index-friendly prefilter against the encoded representation; the
		// decoded exact-membership check below is authoritative.
		token, err := json.Marshal(tag)
		if err != nil {
			return nil, faults.Wrap(faults.ErrSerialization, "library", "search", "encode tag "+tag, err)
		}
		conditions = append(conditions, "tags LIKE ?")
		params = append(params, "%"+string(token)+"%")
	}

	query := `SELECT id FROM sounds`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}

	ids, err := s.collectIDs(ctx, query, params...)
	if err != nil {
		return nil, faults.Wrap(faults.ErrDatabase, "library", "search", "", err)
	}

	sounds := make([]Sound, 0, len(ids))
	for _, id := range ids {
		sound, err := s.GetSound(ctx, id)
		if err != nil {
			return nil, err
		}
		if !hasAllTags(sound.Metadata.Tags, filter) {
			continue
		}
		sounds = append(sounds, sound)
	}

	sortSounds(sounds)
	return sounds, nil
}

func hasAllTags(tags, filter []string) bool {
	for _, want := range filter {
		found := false
		for _, tag := range tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortSounds(sounds []Sound) {
	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(sounds, func(i, j int) bool {
		if cmp := coll.CompareString(sounds[i].Metadata.Name, sounds[j].Metadata.Name); cmp != 0 {
			return cmp < 0
		}
		return sounds[i].Metadata.ID < sounds[j].Metadata.ID
	})
}

func sortCollections(collections []Collection) {
	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(collections, func(i, j int) bool {
		if cmp := coll.CompareString(collections[i].Name, collections[j].Name); cmp != 0 {
			return cmp < 0
		}
		return collections[i].ID < collections[j].ID
	})
}
