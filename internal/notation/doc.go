// Package notation recognizes and emits the five annotation conventions that
// tie a fenced (or tagged) code block to a relative file path.
//
// Every Pattern is a pure text transform: Detect turns a document into an
// ordered list of Fragments and Serialize turns one Fragment back into text the
// same Pattern reads back unchanged. The set of patterns is closed; Selection
// chooses between one forced pattern and the automatic union of all five.
//
// Detection is permissive. Malformed or partial annotations contribute no
// fragment and never produce an error. Fenced blocks and <code> blocks are
// opaque to the line-based matchers, so annotations quoted inside another
// file's content are not picked up a second time.
package notation
