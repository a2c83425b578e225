package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"  demo  ":       "demo",
		"a/b:c":          "a-b-c",
		"what?<is>|this": "whatisthis",
		"":               "",
	}
	for in, want := range cases {
		assert.Equalf(t, want, SanitizeFileName(in), "SanitizeFileName(%q)", in)
	}
}

func TestSanitizeToken(t *testing.T) {
	cases := map[string]string{
		"Trait Demo":   "trait_demo",
		"my-project":   "my_project",
		"2048 game":    "p_2048_game",
		"  ":           "unknown",
		"***":          "unknown",
		"already_fine": "already_fine",
	}
	for in, want := range cases {
		assert.Equalf(t, want, SanitizeToken(in), "SanitizeToken(%q)", in)
	}
}
