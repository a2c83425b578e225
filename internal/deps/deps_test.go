package deps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdtree/internal/project"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	require.NoError(t, os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  ", Optional: true},
	}

	results := CheckBinaries(reqs)
	require.Len(t, results, len(reqs))
	assert.True(t, results[0].Available)
	assert.Equal(t, present, results[0].Detail)
	assert.False(t, results[1].Available)
	assert.NotEmpty(t, results[1].Detail)
	assert.Equal(t, "clearly-not-present-binary", results[1].Command)
	assert.Equal(t, "command not configured", results[2].Detail)
	assert.Equal(t, 1, Missing(results))
}

func TestForEcosystems(t *testing.T) {
	reqs := ForEcosystems(project.Ecosystems(), true)
	commands := make([]string, 0, len(reqs))
	for _, r := range reqs {
		assert.Falsef(t, r.Optional, "expected %s to be required when executing", r.Command)
		commands = append(commands, r.Command)
	}
	assert.Equal(t, []string{"cargo", "npm", "dart"}, commands)

	for _, r := range ForEcosystems(project.Ecosystems(), false) {
		assert.Truef(t, r.Optional, "expected %s to be optional without execution", r.Command)
	}
}
