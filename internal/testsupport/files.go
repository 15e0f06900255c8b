package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteSoundFile writes a small file under dir and returns its path.
func WriteSoundFile(t testing.TB, dir, name string, payload []byte) string {
	t.Helper()

	if len(payload) == 0 {
		payload = []byte("RIFF....WAVEfmt ")
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write sound file: %v", err)
	}
	return path
}
