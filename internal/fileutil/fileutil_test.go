package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := t.TempDir()
	got, err := Resolve(root, "src/main.rs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "main.rs"), got)

	for _, rel := range []string{"", ".", "..", "../x", "a/../../x", "/etc/passwd"} {
		_, err := Resolve(root, rel)
		assert.ErrorIsf(t, err, ErrOutsideRoot, "Resolve(%q)", rel)
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "deep", "file.txt")

	require.NoError(t, WriteAtomic(dest, []byte("first"), FileMode))
	require.NoError(t, WriteAtomic(dest, []byte("second"), FileMode))
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "expected temp files to be cleaned up")
}

func TestWriteAtomicExecutableMode(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "run.sh")
	require.NoError(t, WriteAtomic(dest, []byte("#!/bin/sh\n"), 0o755))
	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.NotZerof(t, info.Mode().Perm()&0o111, "expected executable bits, got %o", info.Mode().Perm())
}

func TestWriteIfAbsent(t *testing.T) {
	dest := filepath.Join(t.TempDir(), ".gitignore")
	wrote, err := WriteIfAbsent(dest, []byte("a\n"), FileMode)
	require.NoError(t, err)
	assert.True(t, wrote)
	wrote, err = WriteIfAbsent(dest, []byte("b\n"), FileMode)
	require.NoError(t, err)
	assert.False(t, wrote)
	got, _ := os.ReadFile(dest)
	assert.Equal(t, "a\n", string(got))
}

func TestLockDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	release, err := LockDir(dir)
	require.NoError(t, err)
	_, err = LockDir(dir)
	assert.ErrorIs(t, err, ErrLocked)
	release()

	release, err = LockDir(dir)
	require.NoError(t, err, "relock after release")
	release()
}
