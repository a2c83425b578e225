// Package deps checks that the toolchain binaries used to run and test
// generated projects are on PATH.
package deps
