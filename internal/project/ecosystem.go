package project

import (
	"path"
	"strings"
)

// DefaultEcosystem is used when neither a hint nor the files decide.
const DefaultEcosystem = "rust"

// Ecosystem describes how one toolchain lays out and builds a project.
type Ecosystem struct {
	Name        string
	Manifest    string
	MainEntry   string
	LibEntry    string
	Extensions  []string
	RunCommand  []string
	TestCommand []string
	Gitignore   string

	synthesize   func(m manifestInput) ([]byte, error)
	manifestKind func(content string) Kind
}

var ecosystems = []Ecosystem{
	{
		Name:         "rust",
		Manifest:     "Cargo.toml",
		MainEntry:    "src/main.rs",
		LibEntry:     "src/lib.rs",
		Extensions:   []string{".rs"},
		RunCommand:   []string{"cargo", "run"},
		TestCommand:  []string{"cargo", "test"},
		Gitignore:    "/target\n/Cargo.lock\n**/*.rs.bk\n",
		synthesize:   cargoManifest,
		manifestKind: cargoManifestKind,
	},
	{
		Name:        "node",
		Manifest:    "package.json",
		MainEntry:   "index.js",
		LibEntry:    "lib/index.js",
		Extensions:  []string{".js", ".mjs", ".ts"},
		RunCommand:  []string{"npm", "start"},
		TestCommand: []string{"npm", "test"},
		Gitignore:   "node_modules/\n",
		synthesize:  packageJSON,
	},
	{
		Name:        "dart",
		Manifest:    "pubspec.yaml",
		MainEntry:   "bin/main.dart",
		LibEntry:    "lib/lib.dart",
		Extensions:  []string{".dart"},
		RunCommand:  []string{"dart", "run"},
		TestCommand: []string{"dart", "test"},
		Gitignore:   ".dart_tool/\n.packages\nbuild/\n",
		synthesize:  pubspec,
	},
}

// Ecosystems returns the known ecosystem profiles.
func Ecosystems() []Ecosystem {
	out := make([]Ecosystem, len(ecosystems))
	copy(out, ecosystems)
	return out
}

// LookupEcosystem finds a profile by name (case-insensitive). "flutter" is
// accepted as an alias for dart.
func LookupEcosystem(name string) (Ecosystem, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "flutter" {
		key = "dart"
	}
	for _, eco := range ecosystems {
		if eco.Name == key {
			return eco, true
		}
	}
	return Ecosystem{}, false
}

// DetectEcosystem picks the profile for a path set: an explicit hint first,
// then a root manifest, then entry files, then source extensions, then the
// default.
func DetectEcosystem(paths []string, hint string) Ecosystem {
	if eco, ok := LookupEcosystem(hint); ok {
		return eco
	}
	for _, eco := range ecosystems {
		for _, p := range paths {
			if p == eco.Manifest {
				return eco
			}
		}
	}
	for _, eco := range ecosystems {
		if InferKind(paths, eco) != PlainFiles {
			return eco
		}
	}
	best, bestCount := ecosystems[0], 0
	for _, eco := range ecosystems {
		count := 0
		for _, p := range paths {
			for _, ext := range eco.Extensions {
				if strings.EqualFold(path.Ext(p), ext) {
					count++
				}
			}
		}
		if count > bestCount {
			best, bestCount = eco, count
		}
	}
	return best
}
