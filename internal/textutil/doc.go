// Package textutil provides name sanitization shared by the generation and
// manifest synthesis code.
//
// Document base names become output directory names through SanitizeFileName
// and package/crate identifiers through SanitizeToken.
package textutil
