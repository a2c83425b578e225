// Package builder materializes a project as a directory tree.
//
// Each file is written atomically and exactly as extracted. A failure on one
// file is recorded and the remaining files are still written; only failing to
// create the project directory itself aborts the build.
package builder
