package config

import "runtime"

const (
	defaultConfigPath         = "~/.config/mdtree/config.toml"
	projectConfigName         = "mdtree.toml"
	defaultInputDir           = "."
	defaultOutputDir          = "output"
	defaultLogDir             = ""
	defaultPattern            = "auto"
	defaultExtractPattern     = "wrapped-heading-fence"
	defaultDocumentExt        = ".md"
	defaultExecTimeoutSeconds = 600
	defaultWatchDebounceMS    = 300
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Generate: Generate{
			Pattern:            defaultPattern,
			Workers:            runtime.NumCPU(),
			ExecTimeoutSeconds: defaultExecTimeoutSeconds,
			WriteGitignore:     true,
			DocumentExt:        defaultDocumentExt,
			WatchDebounceMS:    defaultWatchDebounceMS,
		},
		Extract: Extract{
			Pattern:     defaultExtractPattern,
			IncludeTree: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
