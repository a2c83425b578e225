// Package testsupport holds helpers shared by package tests: a config rooted
// in per-test temp directories, stub toolchain binaries, and file fixtures.
package testsupport
