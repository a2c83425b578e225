// Package fileutil provides filesystem helpers shared by the builder, the
// extractor, and batch generation: root-confined path resolution, atomic
// writes, and directory locking.
package fileutil
