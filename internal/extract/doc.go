// Package extract walks a directory tree and renders its text files as a
// single annotated markdown document, the inverse of generation.
//
// Files are visited in lexicographic slash-path order, filtered by an ignore
// predicate, and decoded concurrently. Binary files and files in unsupported
// encodings are skipped and reported rather than failing the run.
package extract
