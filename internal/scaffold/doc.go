// Package scaffold writes starter documents: a sample project document that
// exercises several notations and an authoring prompt describing all of them.
package scaffold
