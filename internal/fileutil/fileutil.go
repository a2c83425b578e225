package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrOutsideRoot reports a relative path that resolves outside its root.
var ErrOutsideRoot = errors.New("path escapes root")

// Default permissions for materialized files and directories.
const (
	FileMode os.FileMode = 0o644
	DirMode  os.FileMode = 0o755
)

// Resolve joins a slash-separated relative path onto root, rejecting absolute
// paths, volume names, and parent escapes.
func Resolve(root, rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	switch {
	case clean == "." || clean == "":
		return "", fmt.Errorf("%w: empty path", ErrOutsideRoot)
	case filepath.IsAbs(clean), filepath.VolumeName(clean) != "":
		return "", fmt.Errorf("%w: %q is absolute", ErrOutsideRoot, rel)
	case clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)):
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, rel)
	}
	return filepath.Join(root, clean), nil
}

// WriteAtomic writes data to dest through a temp file in the same directory
// followed by a rename, so readers never observe a partial file. Parent
// directories are created as needed.
func WriteAtomic(dest string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return fmt.Errorf("create parent: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".mdtree-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	written, err := tmp.Write(data)
	if err != nil {
		cleanup()
		return fmt.Errorf("write temp: %w", err)
	}
	if written != len(data) {
		cleanup()
		return fmt.Errorf("write size mismatch: wanted %d bytes, wrote %d bytes", len(data), written)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", filepath.Base(dest), err)
	}
	return nil
}

// WriteIfAbsent writes data atomically unless dest already exists. It reports
// whether the file was written.
func WriteIfAbsent(dest string, data []byte, mode os.FileMode) (bool, error) {
	if _, err := os.Lstat(dest); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", dest, err)
	}
	if err := WriteAtomic(dest, data, mode); err != nil {
		return false, err
	}
	return true, nil
}

// ErrLocked reports an output root held by another process.
var ErrLocked = errors.New("directory is locked by another process")

// LockFileName is created inside a locked directory.
const LockFileName = ".mdtree.lock"

// LockDir takes an exclusive, non-blocking lock on dir. The returned function
// releases it.
func LockDir(dir string) (func(), error) {
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return nil, fmt.Errorf("ensure %s: %w", dir, err)
	}
	lock := flock.New(filepath.Join(dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
	}
	return func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}, nil
}
