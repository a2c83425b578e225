package builder_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdtree/internal/builder"
	"mdtree/internal/notation"
	"mdtree/internal/project"
	"mdtree/internal/services"
)

func newProject(t *testing.T, name string, files ...notation.Fragment) *project.Project {
	t.Helper()
	p, err := project.New(name, files, "")
	require.NoError(t, err)
	return p
}

func TestBuildWritesFilesVerbatim(t *testing.T) {
	out := t.TempDir()
	proj := newProject(t, "demo",
		notation.Fragment{Path: "src/main.rs", Content: "fn main() {}"},
		notation.Fragment{Path: "docs/notes.txt", Content: "line\r\nline\r\n"},
		notation.Fragment{Path: "run.sh", Content: "#!/bin/sh\necho hi\n"},
	)

	report, err := builder.Build(context.Background(), proj, out, builder.Options{WriteGitignore: true})
	require.NoError(t, err)
	require.True(t, report.OK())
	assert.NoError(t, report.Err())
	assert.Equal(t, filepath.Join(out, "demo"), report.Dir)
	assert.ElementsMatch(t, []string{"src/main.rs", "docs/notes.txt", "run.sh", "Cargo.toml"}, report.Written)
	assert.True(t, report.Gitignore)

	main, err := os.ReadFile(filepath.Join(report.Dir, "src", "main.rs"))
	require.NoError(t, err)
	assert.Equal(t, "fn main() {}", string(main))

	notes, err := os.ReadFile(filepath.Join(report.Dir, "docs", "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "line\r\nline\r\n", string(notes))

	info, err := os.Stat(filepath.Join(report.Dir, "run.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o111)

	gitignore, err := os.ReadFile(filepath.Join(report.Dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, proj.Ecosystem.Gitignore, string(gitignore))
}

func TestBuildKeepsSuppliedManifestAndGitignore(t *testing.T) {
	out := t.TempDir()
	manifest := "[package]\nname = \"custom\"\nversion = \"9.9.9\"\n"
	proj := newProject(t, "custom",
		notation.Fragment{Path: "Cargo.toml", Content: manifest},
		notation.Fragment{Path: "src/main.rs", Content: "fn main() {}\n"},
		notation.Fragment{Path: ".gitignore", Content: "/dist\n"},
	)

	report, err := builder.Build(context.Background(), proj, out, builder.Options{WriteGitignore: true})
	require.NoError(t, err)
	assert.False(t, report.Gitignore)

	got, err := os.ReadFile(filepath.Join(report.Dir, "Cargo.toml"))
	require.NoError(t, err)
	assert.Equal(t, manifest, string(got))
	gi, err := os.ReadFile(filepath.Join(report.Dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "/dist\n", string(gi))
}

func TestBuildCollectsPerFileFailures(t *testing.T) {
	out := t.TempDir()
	proj := newProject(t, "broken",
		notation.Fragment{Path: "a.txt", Content: "a\n"},
		notation.Fragment{Path: "blocker/child.txt", Content: "x\n"},
		notation.Fragment{Path: "z.txt", Content: "z\n"},
	)
	// A regular file where a directory is needed makes one write fail.
	require.NoError(t, os.MkdirAll(filepath.Join(out, "broken"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "broken", "blocker"), []byte("file"), 0o644))

	report, err := builder.Build(context.Background(), proj, out, builder.Options{})
	require.NoError(t, err)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "blocker/child.txt", report.Failures[0].Path)
	assert.ErrorIs(t, report.Failures[0], services.ErrFileWriteFailed)
	assert.ElementsMatch(t, []string{"a.txt", "z.txt"}, report.Written)

	err = report.Err()
	require.Error(t, err)
	assert.Equal(t, "write_failed", services.Classify(err))
	assert.Contains(t, err.Error(), "blocker/child.txt")
}

func TestBuildFailsWhenProjectDirUnavailable(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "file-not-dir")
	require.NoError(t, os.WriteFile(out, []byte("x"), 0o644))

	proj := newProject(t, "demo", notation.Fragment{Path: "a.txt", Content: "a"})
	_, err := builder.Build(context.Background(), proj, out, builder.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrFileWriteFailed)
}

func TestBuildPlainFilesHaveNoManifest(t *testing.T) {
	out := t.TempDir()
	proj := newProject(t, "notes", notation.Fragment{Path: "todo.txt", Content: "- item\n"})
	report, err := builder.Build(context.Background(), proj, out, builder.Options{WriteGitignore: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"todo.txt"}, report.Written)
	assert.NoFileExists(t, filepath.Join(report.Dir, "Cargo.toml"))
	assert.NoFileExists(t, filepath.Join(report.Dir, ".gitignore"))
}
