package faults_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"soundvault/internal/faults"
)

func TestWrapCarriesMarkerAndCause(t *testing.T) {
	cause := fs.ErrPermission
	err := faults.Wrap(faults.ErrFileSystem, "assets", "place", "copy source", cause)

	if !errors.Is(err, faults.ErrFileSystem) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	want := "filesystem error: assets: place: copy source: permission denied"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := faults.Wrap(faults.ErrNotFound, "library", "get sound", "no such row", nil)
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("marker lost: %v", err)
	}
	if err.Error() != "not found: library: get sound: no such row" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapSkipsEmptyParts(t *testing.T) {
	err := faults.Wrap(faults.ErrDatabase, "", "open", "", nil)
	if err.Error() != "database error: open" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapNilMarkerDefaultsToDatabase(t *testing.T) {
	err := faults.Wrap(nil, "library", "query", "scan row", nil)
	if !errors.Is(err, faults.ErrDatabase) {
		t.Fatalf("expected database fallback, got %v", err)
	}
}

func TestIsNotFoundSeesThroughWrapping(t *testing.T) {
	inner := faults.Wrap(faults.ErrNotFound, "library", "get sound", "no such row", nil)
	outer := fmt.Errorf("resolve member: %w", inner)
	if !faults.IsNotFound(outer) {
		t.Fatalf("NotFound not detected through wrapping: %v", outer)
	}
	if faults.IsNotFound(errors.New("plain")) {
		t.Fatal("plain error misclassified as NotFound")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		marker error
		want   string
	}{
		{faults.ErrFileSystem, "filesystem"},
		{faults.ErrDatabase, "database"},
		{faults.ErrSerialization, "serialization"},
		{faults.ErrConfig, "configuration"},
		{faults.ErrInvalidOperation, "invalid_operation"},
		{faults.ErrNotFound, "not_found"},
	}
	for _, tt := range tests {
		err := faults.Wrap(tt.marker, "c", "op", "", nil)
		if got := faults.Kind(err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.marker, got, tt.want)
		}
	}
	if got := faults.Kind(errors.New("plain")); got != "unknown" {
		t.Errorf("Kind(plain) = %q, want unknown", got)
	}
}
