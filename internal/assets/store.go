// Package assets owns the on-disk layout of the vault: one directory per
// asset, named by its identifier, holding the content file under its
// original name.
package assets

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"soundvault/internal/faults"
	"soundvault/internal/identity"
)

// Store places and removes asset directories under a library root. It keeps
// no in-memory state; every operation reads and mutates the real filesystem.
type Store struct {
	root string
}

// NewStore binds a store to the library root directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the library root directory.
func (s *Store) Root() string {
	return s.root
}

// Place allocates a fresh identifier, creates a directory scoped to it, and
// copies the source file into that directory. When name is empty the source
// file's base name is kept. It returns the identifier and the absolute path
// of the stored copy.
func (s *Store) Place(sourcePath, name string) (string, string, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", faults.Wrap(faults.ErrFileSystem, "assets", "place", "source file does not exist: "+sourcePath, nil)
		}
		return "", "", faults.Wrap(faults.ErrFileSystem, "assets", "place", "stat source "+sourcePath, err)
	}
	if info.IsDir() {
		return "", "", faults.Wrap(faults.ErrFileSystem, "assets", "place", "source is a directory: "+sourcePath, nil)
	}

	if strings.TrimSpace(name) == "" {
		name = filepath.Base(sourcePath)
	}

	id := identity.New()
	dir := filepath.Join(s.root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", faults.Wrap(faults.ErrFileSystem, "assets", "place", "create asset directory "+dir, err)
	}

	target := filepath.Join(dir, name)
	if err := copyFile(sourcePath, target, info.Mode().Perm()); err != nil {
		// A failed placement must not leave its directory behind.
		_ = os.RemoveAll(dir)
		return "", "", faults.Wrap(faults.ErrFileSystem, "assets", "place", "copy into "+target, err)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", "", faults.Wrap(faults.ErrFileSystem, "assets", "place", "resolve "+target, err)
	}
	return id, abs, nil
}

// Remove deletes the asset directory that contains the given stored path so
// no sidecar files are left behind. Removing an already absent asset is not
// an error.
func (s *Store) Remove(storedPath string) error {
	if strings.TrimSpace(storedPath) == "" {
		return nil
	}
	dir := filepath.Dir(storedPath)

	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return faults.Wrap(faults.ErrFileSystem, "assets", "remove", "resolve root", err)
	}
	dirAbs, err := filepath.Abs(dir)
	if err != nil {
		return faults.Wrap(faults.ErrFileSystem, "assets", "remove", "resolve "+dir, err)
	}
	// Refuse to delete anything that is not an asset directory directly
	// under the root.
	if filepath.Dir(dirAbs) != rootAbs || dirAbs == rootAbs {
		return faults.Wrap(faults.ErrFileSystem, "assets", "remove", "path is outside the library root: "+storedPath, nil)
	}

	if err := os.RemoveAll(dirAbs); err != nil {
		return faults.Wrap(faults.ErrFileSystem, "assets", "remove", "delete asset directory "+dirAbs, err)
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
