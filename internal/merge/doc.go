// Package merge holds the helpers shared by descriptor merges: line diffs
// used to preview a rewrite, and crash-safe file replacement.
package merge
