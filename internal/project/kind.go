package project

import "strings"

// Kind describes which entry points a project has. PlainFiles is the zero
// value; Executable and Library may be combined.
type Kind uint8

const (
	PlainFiles Kind = 0
	Executable Kind = 1 << 0
	Library    Kind = 1 << 1
)

// Has reports whether all bits of other are set.
func (k Kind) Has(other Kind) bool {
	return other != 0 && k&other == other
}

// NeedsManifest reports whether a manifest must exist for the project to be
// built by its ecosystem tooling.
func (k Kind) NeedsManifest() bool {
	return k != PlainFiles
}

func (k Kind) String() string {
	if k == PlainFiles {
		return "plain"
	}
	parts := make([]string, 0, 2)
	if k.Has(Executable) {
		parts = append(parts, "executable")
	}
	if k.Has(Library) {
		parts = append(parts, "library")
	}
	return strings.Join(parts, "+")
}

// matchesEntry reports whether p is entry itself or entry nested below
// another directory (workspace members).
func matchesEntry(p, entry string) bool {
	if entry == "" {
		return false
	}
	return p == entry || strings.HasSuffix(p, "/"+entry)
}

// InferKind derives the kind of a path set under eco.
func InferKind(paths []string, eco Ecosystem) Kind {
	kind := PlainFiles
	for _, p := range paths {
		if matchesEntry(p, eco.MainEntry) {
			kind |= Executable
		}
		if matchesEntry(p, eco.LibEntry) {
			kind |= Library
		}
	}
	return kind
}
