package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mdtree/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The input and log directories exist; the output directory does not.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "docs")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Generate.Workers = 2
	for _, dir := range []string{cfgVal.Paths.InputDir, cfgVal.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPattern forces the generation pattern.
func WithPattern(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Generate.Pattern = name
	}
}

// WithExecution turns on the run and test phases.
func WithExecution() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Generate.Execute = true
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// makes their directory the whole PATH, so only the stubs resolve. If names
// is empty, every ecosystem toolchain is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"cargo", "npm", "dart"}
		}
		binDir := StubBinaries(b.t, filepath.Join(b.baseDir, "bin"), names...)
		b.t.Setenv("PATH", binDir)
	}
}

// StubBinaries writes executables that exit 0 into dir and returns dir.
func StubBinaries(t testing.TB, dir string, names ...string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	script := []byte("#!/bin/sh\nexit 0\n")
	for _, name := range names {
		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	return dir
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
