package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdtree/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("disk full")
	err := services.Wrap(services.ErrFileWriteFailed, "demo", "write", "src/main.rs", base)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrFileWriteFailed)
	assert.ErrorIs(t, err, base)
	for _, fragment := range []string{"demo", "write", "src/main.rs"} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(services.ErrExternalTool, "", "", "", nil)
	assert.EqualError(t, err, "external tool failure: unit failure")
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{services.Wrap(services.ErrNoFragmentsFound, "doc", "parse", "", nil), "no_fragments"},
		{fmt.Errorf("outer: %w", services.Wrap(services.ErrExternalTool, "doc", "run", "", nil)), "tool_failed"},
		{services.Wrap(services.ErrUnsupportedEncoding, "a.bin", "decode", "", nil), "unsupported_encoding"},
		{services.Wrap(services.ErrDuplicateProject, "X.md", "assign project", "", nil), "duplicate_project"},
		{errors.New("plain"), "error"},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, services.Classify(tc.err), "Classify(%v)", tc.err)
	}
}
