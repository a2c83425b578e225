package document_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdtree/internal/document"
	"mdtree/internal/notation"
	"mdtree/internal/project"
	"mdtree/internal/services"
)

func render(p notation.Pattern, path, content string) string {
	return p.Serialize(notation.Fragment{Path: path, Content: content})
}

func join(parts ...string) string {
	return strings.Join(parts, "\nSome prose between files.\n\n")
}

func TestParseDuplicateWithinMatcherKeepsLast(t *testing.T) {
	text := join(
		render(notation.HeadingFence, "src/main.rs", "fn main() { first(); }\n"),
		render(notation.HeadingFence, "README.md", "# demo\n"),
		render(notation.HeadingFence, "src/main.rs", "fn main() { second(); }\n"),
	)
	res, err := document.Parse("demo.md", text, document.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/main.rs", "README.md"}, res.Project.Paths())
	main, ok := res.Project.File("src/main.rs")
	require.True(t, ok)
	assert.Equal(t, "fn main() { second(); }\n", main.Content)
	require.Len(t, res.Overwrites, 1)
	assert.Equal(t, "src/main.rs", res.Overwrites[0].Path)
	assert.Equal(t, notation.HeadingFence, res.Overwrites[0].Kept)
}

func TestParseDuplicateAcrossMatchersPrefersPriority(t *testing.T) {
	text := join(
		render(notation.HeadingFence, "notes/a.txt", "from heading\n"),
		render(notation.TaggedBlock, "notes/a.txt", "from tag\n"),
	)
	res, err := document.Parse("notes.md", text, document.Options{})
	require.NoError(t, err)

	f, ok := res.Project.File("notes/a.txt")
	require.True(t, ok)
	assert.Equal(t, "from tag\n", f.Content)
	assert.Equal(t, notation.TaggedBlock, f.Source)
	require.Len(t, res.Overwrites, 1)
	assert.Equal(t, notation.TaggedBlock, res.Overwrites[0].Kept)
	assert.Equal(t, notation.HeadingFence, res.Overwrites[0].Dropped)
	assert.Contains(t, res.Overwrites[0].String(), "notes/a.txt")
}

func TestParseOrderFollowsPriorityThenDocument(t *testing.T) {
	text := join(
		render(notation.HeadingFence, "b.txt", "b\n"),
		render(notation.TaggedBlock, "a.txt", "a\n"),
		render(notation.Banner, "c.txt", "c\n"),
	)
	res, err := document.Parse("mixed.md", text, document.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, res.Project.Paths())
	assert.Empty(t, res.Overwrites)
}

func TestParseForcedSelectionIgnoresOtherNotations(t *testing.T) {
	text := join(
		render(notation.TaggedBlock, "tagged.txt", "t\n"),
		render(notation.Banner, "banner.txt", "b\n"),
	)

	auto, err := document.Parse("doc.md", text, document.Options{Selection: notation.Auto()})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tagged.txt", "banner.txt"}, auto.Project.Paths())

	forced, err := document.Parse("doc.md", text, document.Options{Selection: notation.Force(notation.Banner)})
	require.NoError(t, err)
	assert.Equal(t, []string{"banner.txt"}, forced.Project.Paths())
}

func TestParseWithoutAnnotationsFails(t *testing.T) {
	text := "# Notes\n\nJust prose.\n\n```\nno path here\n```\n"
	res, err := document.Parse("empty.md", text, document.Options{})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, services.ErrNoFragmentsFound))
	assert.Equal(t, "no_fragments", services.Classify(err))
	assert.Contains(t, err.Error(), "empty.md")
}

func TestParseForcedPatternWithoutMatchesFails(t *testing.T) {
	text := render(notation.TaggedBlock, "a.txt", "a\n")
	_, err := document.Parse("doc.md", text, document.Options{Selection: notation.Force(notation.Banner)})
	assert.ErrorIs(t, err, services.ErrNoFragmentsFound)
}

func TestParseDerivesProject(t *testing.T) {
	text := render(notation.WrappedHeadingFence, "src/lib.rs", "pub fn add(a: i32, b: i32) -> i32 { a + b }\n")
	res, err := document.Parse("/tmp/docs/adder.md", text, document.Options{})
	require.NoError(t, err)

	assert.Equal(t, "adder", res.Project.Name)
	assert.Equal(t, project.Library, res.Project.Kind)
	require.NotNil(t, res.Project.Manifest)
	assert.Equal(t, "Cargo.toml", res.Project.Manifest.Path)
}

func TestParseProjectTypeHint(t *testing.T) {
	text := render(notation.HeadingFence, "index.js", "console.log('hi')\n")
	res, err := document.Parse("app.md", text, document.Options{ProjectType: "node"})
	require.NoError(t, err)
	assert.Equal(t, "node", res.Project.Ecosystem.Name)
	assert.Equal(t, project.Executable, res.Project.Kind)
}
