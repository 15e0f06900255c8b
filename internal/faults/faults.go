package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFileSystem       = errors.New("filesystem error")
	ErrDatabase         = errors.New("database error")
	ErrSerialization    = errors.New("serialization error")
	ErrConfig           = errors.New("configuration error")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNotFound         = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrDatabase
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsNotFound reports whether the error chain carries the NotFound marker.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Kind returns a short classification string for log fields.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrFileSystem):
		return "filesystem"
	case errors.Is(err, ErrDatabase):
		return "database"
	case errors.Is(err, ErrSerialization):
		return "serialization"
	case errors.Is(err, ErrConfig):
		return "configuration"
	case errors.Is(err, ErrInvalidOperation):
		return "invalid_operation"
	default:
		return "unknown"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "vault failure"
	}
	return strings.Join(parts, ": ")
}
