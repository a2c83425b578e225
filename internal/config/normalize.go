package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Environment variables that override file values.
const (
	EnvOutputDir   = "MDTREE_OUTPUT_DIR"
	EnvPattern     = "MDTREE_PATTERN"
	EnvProjectType = "MDTREE_PROJECT_TYPE"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGenerate()
	c.normalizeExtract()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(EnvOutputDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = value
	}
	if value, ok := os.LookupEnv(EnvPattern); ok && strings.TrimSpace(value) != "" {
		c.Generate.Pattern = value
	}
	if value, ok := os.LookupEnv(EnvProjectType); ok && strings.TrimSpace(value) != "" {
		c.Generate.ProjectType = value
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Extract.IgnoreFile, err = expandPath(strings.TrimSpace(c.Extract.IgnoreFile)); err != nil {
		return fmt.Errorf("extract.ignore_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeGenerate() {
	c.Generate.Pattern = strings.ToLower(strings.TrimSpace(c.Generate.Pattern))
	if c.Generate.Pattern == "" {
		c.Generate.Pattern = defaultPattern
	}
	c.Generate.ProjectType = strings.ToLower(strings.TrimSpace(c.Generate.ProjectType))
	if c.Generate.Workers <= 0 {
		c.Generate.Workers = runtime.NumCPU()
	}
	if c.Generate.ExecTimeoutSeconds <= 0 {
		c.Generate.ExecTimeoutSeconds = defaultExecTimeoutSeconds
	}
	if c.Generate.WatchDebounceMS <= 0 {
		c.Generate.WatchDebounceMS = defaultWatchDebounceMS
	}
	ext := strings.TrimSpace(c.Generate.DocumentExt)
	if ext == "" {
		ext = defaultDocumentExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Generate.DocumentExt = strings.ToLower(ext)
}

func (c *Config) normalizeExtract() {
	c.Extract.Pattern = strings.ToLower(strings.TrimSpace(c.Extract.Pattern))
	if c.Extract.Pattern == "" {
		c.Extract.Pattern = defaultExtractPattern
	}
	skip := make([]string, 0, len(c.Extract.Skip))
	for _, entry := range c.Extract.Skip {
		entry = strings.Trim(strings.TrimSpace(entry), "/")
		if entry != "" {
			skip = append(skip, entry)
		}
	}
	c.Extract.Skip = skip
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
