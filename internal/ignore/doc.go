// Package ignore builds the path predicate the extractor uses to decide which
// files under a root are left out of a generated document.
package ignore
