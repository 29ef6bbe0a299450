// Package types defines the cross-package data structures used by the coderoller CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
)

// PathEntry is a single filesystem entry that survived ignore filtering.
// The relative path is slash-separated regardless of platform.
type PathEntry struct {
	RelativePath string
	IsDirectory  bool
}

// FileSection is one emitted file block of the flattened document.
type FileSection struct {
	RelativePath string
	LanguageTag  string
	Contents     string
}
