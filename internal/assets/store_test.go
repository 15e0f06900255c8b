package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"soundvault/internal/assets"
	"soundvault/internal/testsupport"
)

func TestPlaceCreatesIsolatedDirectory(t *testing.T) {
	root := t.TempDir()
	source := testsupport.WriteSoundFile(t, t.TempDir(), "clap.wav", []byte("payload"))
	store := assets.NewStore(root)

	id, storedPath, err := store.Place(source, "")
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected identifier to be assigned")
	}
	wantDir := filepath.Join(root, id)
	if filepath.Dir(storedPath) != wantDir {
		t.Fatalf("stored path %s not inside %s", storedPath, wantDir)
	}
	if filepath.Base(storedPath) != "clap.wav" {
		t.Fatalf("original file name not kept: %s", storedPath)
	}

	data, err := os.ReadFile(storedPath)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("content mismatch: %q", data)
	}

	// The source must be untouched; Place copies, it does not move.
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("source file missing after place: %v", err)
	}
}

func TestPlaceHonorsSuggestedName(t *testing.T) {
	root := t.TempDir()
	source := testsupport.WriteSoundFile(t, t.TempDir(), "upload.tmp", nil)
	store := assets.NewStore(root)

	_, storedPath, err := store.Place(source, "clap.wav")
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if filepath.Base(storedPath) != "clap.wav" {
		t.Fatalf("suggested name ignored: %s", storedPath)
	}
}

func TestPlaceDistinctIdentifiers(t *testing.T) {
	root := t.TempDir()
	source := testsupport.WriteSoundFile(t, t.TempDir(), "clap.wav", nil)
	store := assets.NewStore(root)

	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		id, _, err := store.Place(source, "")
		if err != nil {
			t.Fatalf("Place failed: %v", err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("identifier %s assigned twice", id)
		}
		seen[id] = struct{}{}
	}
}

func TestPlaceMissingSource(t *testing.T) {
	store := assets.NewStore(t.TempDir())
	if _, _, err := store.Place(filepath.Join(t.TempDir(), "nope.wav"), ""); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestPlaceRejectsDirectorySource(t *testing.T) {
	store := assets.NewStore(t.TempDir())
	if _, _, err := store.Place(t.TempDir(), ""); err == nil {
		t.Fatal("expected error for directory source")
	}
}

func TestPlaceFailureCleansUpDirectory(t *testing.T) {
	root := t.TempDir()
	source := testsupport.WriteSoundFile(t, t.TempDir(), "clap.wav", nil)
	store := assets.NewStore(root)

	// A name pointing into a nonexistent subdirectory makes the copy fail
	// after the asset directory was created.
	if _, _, err := store.Place(source, filepath.Join("missing", "clap.wav")); err == nil {
		t.Fatal("expected copy failure")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("failed placement left %d entries behind", len(entries))
	}
}

func TestRemoveDeletesWholeDirectory(t *testing.T) {
	root := t.TempDir()
	source := testsupport.WriteSoundFile(t, t.TempDir(), "clap.wav", nil)
	store := assets.NewStore(root)

	id, storedPath, err := store.Place(source, "")
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	// A sidecar artifact must disappear with the asset.
	sidecar := filepath.Join(root, id, "waveform.png")
	if err := os.WriteFile(sidecar, []byte("img"), 0o644); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}

	if err := store.Remove(storedPath); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, id)); !os.IsNotExist(err) {
		t.Fatalf("asset directory still present: %v", err)
	}

	// Removing again is a no-op.
	if err := store.Remove(storedPath); err != nil {
		t.Fatalf("repeat Remove failed: %v", err)
	}
}

func TestRemoveRefusesPathsOutsideRoot(t *testing.T) {
	store := assets.NewStore(t.TempDir())

	outside := testsupport.WriteSoundFile(t, t.TempDir(), "clap.wav", nil)
	if err := store.Remove(outside); err == nil {
		t.Fatal("expected error for path outside root")
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("outside file should be untouched: %v", err)
	}
}
