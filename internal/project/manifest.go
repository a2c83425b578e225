package project

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const defaultVersion = "0.1.0"

type manifestInput struct {
	Name     string
	Kind     Kind
	MainPath string
	LibPath  string
}

type cargoFile struct {
	Package      cargoPackage      `toml:"package"`
	Lib          *cargoTarget      `toml:"lib,omitempty"`
	Bin          []cargoTarget     `toml:"bin,omitempty"`
	Dependencies map[string]string `toml:"dependencies"`
}

type cargoPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

type cargoTarget struct {
	Name string `toml:"name,omitempty"`
	Path string `toml:"path"`
}

func cargoManifest(m manifestInput) ([]byte, error) {
	manifest := cargoFile{
		Package:      cargoPackage{Name: m.Name, Version: defaultVersion, Edition: "2021"},
		Dependencies: map[string]string{},
	}
	if m.Kind.Has(Library) {
		manifest.Lib = &cargoTarget{Path: m.LibPath}
	}
	if m.Kind.Has(Executable) {
		manifest.Bin = []cargoTarget{{Name: m.Name, Path: m.MainPath}}
	}
	out, err := toml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("encode Cargo.toml: %w", err)
	}
	return out, nil
}

// cargoManifestKind reads entry points declared by a supplied Cargo.toml:
// [[bin]] targets make the project executable and [lib] makes it a library.
func cargoManifestKind(content string) Kind {
	var manifest struct {
		Lib *cargoTarget  `toml:"lib"`
		Bin []cargoTarget `toml:"bin"`
	}
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return PlainFiles
	}
	kind := PlainFiles
	if len(manifest.Bin) > 0 {
		kind |= Executable
	}
	if manifest.Lib != nil {
		kind |= Library
	}
	return kind
}

type packageFile struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Private bool              `json:"private"`
	Main    string            `json:"main,omitempty"`
	Scripts map[string]string `json:"scripts"`
}

func packageJSON(m manifestInput) ([]byte, error) {
	manifest := packageFile{
		Name:    m.Name,
		Version: defaultVersion,
		Private: true,
		Scripts: map[string]string{},
	}
	if m.Kind.Has(Library) {
		manifest.Main = m.LibPath
		manifest.Scripts["test"] = "node --test"
	}
	if m.Kind.Has(Executable) {
		manifest.Scripts["start"] = "node " + m.MainPath
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return nil, fmt.Errorf("encode package.json: %w", err)
	}
	return buf.Bytes(), nil
}

type pubspecFile struct {
	Name            string            `yaml:"name"`
	Version         string            `yaml:"version"`
	Environment     map[string]string `yaml:"environment"`
	Executables     map[string]string `yaml:"executables,omitempty"`
	DevDependencies map[string]string `yaml:"dev_dependencies,omitempty"`
}

func pubspec(m manifestInput) ([]byte, error) {
	manifest := pubspecFile{
		Name:        m.Name,
		Version:     defaultVersion,
		Environment: map[string]string{"sdk": ">=3.0.0 <4.0.0"},
	}
	if m.Kind.Has(Executable) {
		manifest.Executables = map[string]string{m.Name: "main"}
	}
	if m.Kind.Has(Library) {
		manifest.DevDependencies = map[string]string{"test": "^1.24.0"}
	}
	out, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("encode pubspec.yaml: %w", err)
	}
	return out, nil
}
