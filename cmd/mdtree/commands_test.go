package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdtree/internal/notation"
	"mdtree/internal/scaffold"
	"mdtree/internal/testsupport"
)

func TestPatternsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := env.run(t, "patterns", "--examples")
	require.NoError(t, err)
	for _, name := range notation.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "code-tag")
	assert.Contains(t, out, `<code path="src/main.rs">`)
}

func TestSampleAndPromptCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "scaffold")

	out, _, err := env.run(t, "sample", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, scaffold.SampleFileName)
	assert.Equal(t, scaffold.Sample(), testsupport.ReadFile(t, filepath.Join(dir, scaffold.SampleFileName)))

	_, _, err = env.run(t, "sample", "--dir", dir)
	require.ErrorIs(t, err, scaffold.ErrExists)

	_, _, err = env.run(t, "sample", "--dir", dir, "--force")
	require.NoError(t, err)

	_, _, err = env.run(t, "prompt", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, scaffold.Prompt(), testsupport.ReadFile(t, filepath.Join(dir, scaffold.PromptFileName)))
}

func TestSampleGeneratesProject(t *testing.T) {
	env := setupCLITestEnv(t)
	in := filepath.Join(env.baseDir, "docs")
	out := filepath.Join(env.baseDir, "out")

	_, _, err := env.run(t, "sample", "--dir", in)
	require.NoError(t, err)
	_, _, err = env.run(t, "generate", in, "--output", out)
	require.NoError(t, err)
	for _, rel := range []string{"Cargo.toml", "README.md", "src/main.rs", "src/lib.rs", "src/util.rs"} {
		assert.FileExists(t, filepath.Join(out, "sample", filepath.FromSlash(rel)))
	}
}

func TestConfigInitShowValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "defaults were used")
	assert.Contains(t, out, "Configuration valid")

	target := filepath.Join(env.baseDir, "conf", "config.toml")
	out, _, err = env.run(t, "config", "init", "--path", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote sample configuration")
	assert.FileExists(t, target)

	_, _, err = env.run(t, "config", "init", "--path", target)
	require.Error(t, err)
	_, _, err = env.run(t, "config", "init", "--path", target, "--overwrite")
	require.NoError(t, err)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--config", target, "--log-format", "json", "config", "show"})
	var stdout, stderr syncBuffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), target)
	assert.Contains(t, stdout.String(), "[generate]")
	assert.Regexp(t, `format = ["']json["']`, stdout.String())
}

func TestDoctorCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("PATH", testsupport.StubBinaries(t, filepath.Join(env.baseDir, "bin"), "cargo"))

	out, _, err := env.run(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "cargo")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "Output directory")

	env.writeConfig(t, "[generate]\nexecute = true\nproject_type = \"rust\"\n")
	out, _, err = env.run(t, "doctor")
	require.NoError(t, err)
	assert.NotContains(t, out, "npm")

	env.writeConfig(t, "[generate]\nexecute = true\n")
	_, _, err = env.run(t, "doctor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 required toolchain(s) missing")
}
