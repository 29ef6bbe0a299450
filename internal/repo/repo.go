// Package repo resolves repository sources, cloning remote URLs into scratch directories.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

const (
	httpSchemePrefix  = "http://"
	httpsSchemePrefix = "https://"
	sshAddressPrefix  = "git@"
	gitSuffix         = ".git"

	scratchDirectoryPattern = "coderoller-*"

	// errorCloneFormat reports a failed clone of a remote repository.
	errorCloneFormat = "cloning %s: %w"
	// errorScratchFormat reports a failure to create the scratch directory.
	errorScratchFormat = "creating scratch directory: %w"
	// errorLocalPathFormat reports an unusable local repository path.
	errorLocalPathFormat = "repository path '%s': %w"
	// errorNotDirectoryFormat reports a local path that is not a directory.
	errorNotDirectoryFormat = "repository path '%s' is not a directory"
)

// IsRemote reports whether the input designates a remote repository URL.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, httpSchemePrefix) ||
		strings.HasPrefix(input, httpsSchemePrefix) ||
		strings.HasPrefix(input, sshAddressPrefix)
}

// Name derives the repository name from a path or URL basename. A trailing
// .git suffix is trimmed for remote addresses.
func Name(input string) string {
	if IsRemote(input) {
		baseName := filepath.Base(strings.TrimSuffix(input, "/"))
		return strings.TrimSuffix(baseName, gitSuffix)
	}
	return filepath.Base(filepath.Clean(input))
}

// ScratchDirectory is an explicit handle to a temporary clone location. The
// creator must release it on every exit path; Release is idempotent.
type ScratchDirectory struct {
	path     string
	released bool
}

// Path returns the scratch directory location.
func (scratch *ScratchDirectory) Path() string {
	return scratch.path
}

// Release removes the scratch directory and everything beneath it.
func (scratch *ScratchDirectory) Release() error {
	if scratch == nil || scratch.released {
		return nil
	}
	scratch.released = true
	return os.RemoveAll(scratch.path)
}

// NewScratchDirectory creates a fresh scratch directory for a clone.
func NewScratchDirectory() (*ScratchDirectory, error) {
	scratchPath, scratchError := os.MkdirTemp("", scratchDirectoryPattern)
	if scratchError != nil {
		return nil, fmt.Errorf(errorScratchFormat, scratchError)
	}
	return &ScratchDirectory{path: scratchPath}, nil
}

// Source is a resolved repository location. Remote sources own a scratch
// directory holding the clone; local sources do not.
type Source struct {
	Root    string
	scratch *ScratchDirectory
}

// Release removes the scratch directory of a cloned source. It is a no-op for
// local sources and safe to call more than once.
func (source *Source) Release() error {
	if source == nil {
		return nil
	}
	return source.scratch.Release()
}

// Resolve prepares the repository named by input for processing. Remote URLs
// are cloned shallowly into a scratch directory; the scratch directory is
// removed before returning a clone error. Local inputs must name an existing
// directory.
func Resolve(input string) (*Source, error) {
	if IsRemote(input) {
		scratch, scratchError := NewScratchDirectory()
		if scratchError != nil {
			return nil, scratchError
		}
		cloneOptions := &git.CloneOptions{
			URL:   input,
			Depth: 1,
		}
		if _, cloneError := git.PlainClone(scratch.Path(), false, cloneOptions); cloneError != nil {
			releaseError := scratch.Release()
			if releaseError != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to remove scratch directory %s: %v\n", scratch.Path(), releaseError)
			}
			return nil, fmt.Errorf(errorCloneFormat, input, cloneError)
		}
		return &Source{Root: scratch.Path(), scratch: scratch}, nil
	}

	absolutePath, absolutePathError := filepath.Abs(input)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorLocalPathFormat, input, absolutePathError)
	}
	pathInfo, statError := os.Stat(absolutePath)
	if statError != nil {
		return nil, fmt.Errorf(errorLocalPathFormat, input, statError)
	}
	if !pathInfo.IsDir() {
		return nil, fmt.Errorf(errorNotDirectoryFormat, input)
	}
	return &Source{Root: absolutePath}, nil
}
