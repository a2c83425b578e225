package project

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"mdtree/internal/notation"
	"mdtree/internal/textutil"
)

// Project is the file set recovered from one document.
type Project struct {
	// Name is the directory name derived from the document base name.
	Name      string
	Ecosystem Ecosystem
	Kind      Kind
	// Files holds document fragments in first-seen order.
	Files []notation.Fragment
	// Manifest is set only when the manifest was synthesized.
	Manifest *notation.Fragment
}

// NameFromDocument derives a project directory name from a document path.
func NameFromDocument(document string) string {
	base := filepath.Base(document)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := textutil.SanitizeFileName(stem)
	if name == "" || name == "." || name == ".." {
		return "project"
	}
	return name
}

// New builds a project from parsed fragments. The hint names an ecosystem and
// may be empty.
func New(name string, files []notation.Fragment, hint string) (*Project, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	eco := DetectEcosystem(paths, hint)
	p := &Project{
		Name:      name,
		Ecosystem: eco,
		Files:     files,
		Kind:      InferKind(paths, eco),
	}
	if manifest, ok := p.File(eco.Manifest); ok && eco.manifestKind != nil {
		p.Kind |= eco.manifestKind(manifest.Content)
	}
	if err := p.synthesizeManifest(); err != nil {
		return nil, err
	}
	return p, nil
}

// File returns the document fragment at path p.
func (p *Project) File(rel string) (notation.Fragment, bool) {
	for _, f := range p.Files {
		if f.Path == rel {
			return f, true
		}
	}
	return notation.Fragment{}, false
}

// Paths lists document fragment paths in order.
func (p *Project) Paths() []string {
	out := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		out = append(out, f.Path)
	}
	return out
}

// AllFiles returns document fragments followed by the synthesized manifest.
func (p *Project) AllFiles() []notation.Fragment {
	out := make([]notation.Fragment, 0, len(p.Files)+1)
	out = append(out, p.Files...)
	if p.Manifest != nil {
		out = append(out, *p.Manifest)
	}
	return out
}

// PackageName is the manifest-safe identifier for the project.
func (p *Project) PackageName() string {
	return textutil.SanitizeToken(p.Name)
}

// HasManifest reports whether the document supplied a root manifest.
func (p *Project) HasManifest() bool {
	_, ok := p.File(p.Ecosystem.Manifest)
	return ok
}

func (p *Project) synthesizeManifest() error {
	if !p.Kind.NeedsManifest() || p.HasManifest() || p.Ecosystem.synthesize == nil {
		return nil
	}
	input := manifestInput{
		Name:     p.PackageName(),
		Kind:     p.Kind,
		MainPath: p.entryPath(p.Ecosystem.MainEntry),
		LibPath:  p.entryPath(p.Ecosystem.LibEntry),
	}
	content, err := p.Ecosystem.synthesize(input)
	if err != nil {
		return fmt.Errorf("synthesize %s for %s: %w", p.Ecosystem.Manifest, p.Name, err)
	}
	p.Manifest = &notation.Fragment{
		Path:     p.Ecosystem.Manifest,
		Language: strings.TrimPrefix(path.Ext(p.Ecosystem.Manifest), "."),
		Content:  string(content),
	}
	return nil
}

// entryPath returns the first fragment path matching entry, or entry itself.
func (p *Project) entryPath(entry string) string {
	for _, f := range p.Files {
		if matchesEntry(f.Path, entry) {
			return f.Path
		}
	}
	return entry
}
