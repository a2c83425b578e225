// Package project models the set of files recovered from one document.
//
// A Project carries its fragments in first-seen order, the ecosystem profile
// used to interpret them, the derived Kind (executable, library, both, or a
// plain file set), and a synthesized manifest when the document did not supply
// one but the kind needs it. Kind is always derived from fragment paths and a
// supplied manifest; it is never taken as input.
package project
