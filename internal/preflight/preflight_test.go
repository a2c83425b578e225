package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdtree/internal/config"
	"mdtree/internal/deps"
	"mdtree/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	assert.Truef(t, result.Passed, "expected pass for temp dir, got: %s", result.Detail)
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	assert.False(t, result.Passed, "expected failure for missing dir")
	assert.NotEmpty(t, result.Detail)
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))

	assert.False(t, CheckDirectoryAccess("test", f).Passed, "expected failure for file path")
	res := CheckFileReadable("test", f)
	assert.Truef(t, res.Passed, "expected readable file, got: %s", res.Detail)
	assert.False(t, CheckFileReadable("test", filepath.Dir(f)).Passed, "expected failure for directory passed as file")
}

func TestCheckWritableTarget_Missing(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "out")
	result := CheckWritableTarget("Output directory", target)
	assert.Truef(t, result.Passed, "expected creatable target to pass, got: %s", result.Detail)
}

func TestCheckWritableTarget_ParentIsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))
	result := CheckWritableTarget("Output directory", filepath.Join(f, "out"))
	assert.False(t, result.Passed, "expected failure when the nearest ancestor is a file")
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Extract.IgnoreFile = filepath.Join(testsupport.BaseDir(cfg), "missing-ignore")

	results := RunAll(cfg)
	require.Len(t, results, 4)
	assert.Equalf(t, 1, Failed(results), "expected only the ignore file check to fail: %#v", results)
	assert.Nil(t, RunAll(nil))
}

func TestCheckToolchains(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("cargo"))
	cfg.Generate.ProjectType = "rust"

	statuses := CheckToolchains(cfg, true)
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Available, "expected stubbed cargo to be available")

	all := CheckToolchains(&config.Config{}, true)
	require.Len(t, all, 3, "expected one binary per ecosystem")
	assert.Equalf(t, 2, deps.Missing(all), "expected npm and dart to be missing: %#v", all)
}
