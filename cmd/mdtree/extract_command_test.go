package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdtree/internal/document"
	"mdtree/internal/notation"
	"mdtree/internal/testsupport"
)

func writeTree(t *testing.T, root string) {
	t.Helper()
	testsupport.WriteFile(t, filepath.Join(root, "src", "main.rs"), "fn main() {}\n")
	testsupport.WriteFile(t, filepath.Join(root, "README.md"), "# Demo\n\n```sh\ncargo run\n```\n")
	testsupport.WriteFile(t, filepath.Join(root, "target", "debug", "demo"), "binary")
	testsupport.WriteFile(t, filepath.Join(root, ".env"), "SECRET=1\n")
}

func TestExtractWritesRoundTrippableDocument(t *testing.T) {
	env := setupCLITestEnv(t)
	root := filepath.Join(env.baseDir, "demo")
	writeTree(t, root)
	dest := filepath.Join(root, "demo.md")

	stdout, _, err := env.run(t, "extract", root, "--out", dest)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 2 files")

	// A second run must not pick up the document it wrote the first time.
	stdout, _, err = env.run(t, "extract", root, "--out", dest)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 2 files")

	text := testsupport.ReadFile(t, dest)
	assert.Contains(t, text, "# Project structure")
	files, overwrites := document.Merge(text, notation.Auto())
	assert.Empty(t, overwrites)
	require.Len(t, files, 2)
	got := map[string]string{}
	for _, f := range files {
		got[f.Path] = f.Content
	}
	assert.Equal(t, "fn main() {}\n", got["src/main.rs"])
	assert.Equal(t, "# Demo\n\n```sh\ncargo run\n```\n", got["README.md"])
}

func TestExtractToStdoutWithFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	root := filepath.Join(env.baseDir, "demo")
	writeTree(t, root)

	stdout, _, err := env.run(t, "extract", root, "--pattern", "banner", "--no-tree", "--hidden", "--skip", "README.md,src/lib")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "# Project structure")
	assert.NotContains(t, stdout, "README.md")

	files, _ := document.Merge(stdout, notation.Force(notation.Banner))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{".env", "src/main.rs"}, paths)
}

func TestExtractHonoursGitignore(t *testing.T) {
	env := setupCLITestEnv(t)
	root := filepath.Join(env.baseDir, "demo")
	writeTree(t, root)
	testsupport.WriteFile(t, filepath.Join(root, ".gitignore"), "README.md\n")

	stdout, _, err := env.run(t, "extract", root, "--no-tree")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "README.md")
	assert.Contains(t, stdout, "src/main.rs")
}

func TestExtractMissingIgnoreFile(t *testing.T) {
	env := setupCLITestEnv(t)
	root := filepath.Join(env.baseDir, "demo")
	writeTree(t, root)

	_, _, err := env.run(t, "extract", root, "--ignore-file", filepath.Join(env.baseDir, "missing"))
	require.Error(t, err)
}

func TestInsideRoot(t *testing.T) {
	rel, ok := insideRoot("/a/b", "/a/b/c/doc.md")
	assert.True(t, ok)
	assert.Equal(t, "c/doc.md", rel)

	_, ok = insideRoot("/a/b", "/a/doc.md")
	assert.False(t, ok)
	_, ok = insideRoot("/a/b", "/a/b")
	assert.False(t, ok)
}
