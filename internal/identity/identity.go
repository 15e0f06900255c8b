// Package identity generates the collision-resistant identifiers assigned to
// sounds and collections. Identifiers are random UUIDv4 strings; once a sound
// is deleted its identifier is never reissued.
package identity

import (
	"github.com/google/uuid"

	"soundvault/internal/faults"
)

// New returns a fresh identifier.
func New() string {
	return uuid.NewString()
}

// Validate rejects identifiers that could not have been produced by New.
func Validate(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return faults.Wrap(faults.ErrInvalidOperation, "identity", "validate", "malformed identifier "+id, err)
	}
	return nil
}
