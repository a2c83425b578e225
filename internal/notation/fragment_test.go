package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"src/main.rs", "src/main.rs", true},
		{"./src//lib.rs", "src/lib.rs", true},
		{`src\win\path.rs`, "src/win/path.rs", true},
		{"a/../b.rs", "b.rs", true},
		{"", "", false},
		{"../up.rs", "", false},
		{"/abs.rs", "", false},
		{"C:/x.rs", "", false},
		{"dir/", "", false},
		{"bad<name>.rs", "", false},
		{"..", "", false},
	}
	for _, tc := range cases {
		got, err := NormalizePath(tc.raw)
		if tc.ok {
			require.NoErrorf(t, err, "NormalizePath(%q)", tc.raw)
			assert.Equalf(t, tc.want, got, "NormalizePath(%q)", tc.raw)
			continue
		}
		assert.ErrorIsf(t, err, ErrInvalidPath, "NormalizePath(%q)", tc.raw)
	}
}

func TestParsePatternAndSelection(t *testing.T) {
	for _, p := range All() {
		got, err := ParsePattern(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	p, err := ParsePattern("code-tag")
	require.NoError(t, err)
	assert.Equal(t, TaggedBlock, p)
	for _, p := range All() {
		for _, alias := range p.Aliases() {
			got, err := ParsePattern(alias)
			require.NoErrorf(t, err, "alias %q", alias)
			assert.Equalf(t, p, got, "alias %q", alias)
		}
	}
	assert.Equal(t, []string{"comment", "raw"}, LeadingComment.Aliases())
	_, err = ParsePattern("nope")
	assert.Error(t, err)

	sel, err := ParseSelection("")
	require.NoError(t, err)
	_, forced := sel.Forced()
	assert.False(t, forced)
	assert.Len(t, sel.Patterns(), 5)
	assert.Equal(t, "auto", sel.String())

	sel, err = ParseSelection("banner")
	require.NoError(t, err)
	assert.Equal(t, []Pattern{Banner}, sel.Patterns())
}
