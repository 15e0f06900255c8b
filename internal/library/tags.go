package library

import (
	"encoding/json"
	"strings"

	"soundvault/internal/faults"
)

// encodeTags serializes a tag sequence to its stored representation. The
// encoding preserves order so a round trip reproduces the same sequence.
func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", faults.Wrap(faults.ErrSerialization, "library", "encode tags", "", err)
	}
	return string(data), nil
}

// decodeTags reverses encodeTags. A malformed encoding degrades to an empty
// sequence so reads stay usable against partially written legacy rows.
func decodeTags(encoded string) []string {
	if strings.TrimSpace(encoded) == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(encoded), &tags); err != nil {
		return nil
	}
	return tags
}
