// Package watch reports markdown documents that change in a directory so
// they can be regenerated. Bursts of events for the same document (editors
// often write several times per save) are collapsed into one callback.
package watch
