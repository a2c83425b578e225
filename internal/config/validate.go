package config

import (
	"fmt"
	"slices"

	"mdtree/internal/notation"
	"mdtree/internal/project"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGenerate(); err != nil {
		return err
	}
	if err := c.validateExtract(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateGenerate() error {
	if _, err := notation.ParseSelection(c.Generate.Pattern); err != nil {
		return fmt.Errorf("generate.pattern: %w (valid: auto, %v)", err, notation.Names())
	}
	if c.Generate.ProjectType != "" {
		if _, ok := project.LookupEcosystem(c.Generate.ProjectType); !ok {
			return fmt.Errorf("generate.project_type: unsupported value %q", c.Generate.ProjectType)
		}
	}
	if c.Generate.Workers < 1 {
		return fmt.Errorf("generate.workers must be positive")
	}
	return nil
}

func (c *Config) validateExtract() error {
	if _, err := notation.ParsePattern(c.Extract.Pattern); err != nil {
		return fmt.Errorf("extract.pattern: %w (valid: %v)", err, notation.Names())
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains([]string{"console", "json"}, c.Logging.Format) {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
