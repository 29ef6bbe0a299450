// Package scan walks a repository and collects the entries that survive filtering.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/coderoller/coderoller/internal/ignore"
	"github.com/coderoller/coderoller/internal/types"
	"github.com/coderoller/coderoller/internal/utils"
)

const (
	// warningAccessPathFormat is used when a path cannot be accessed during traversal.
	warningAccessPathFormat = "Warning: error accessing path %s: %v\n"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
)

// Collect traverses rootPath and returns the entries that pass the matcher, in
// traversal order. Excluded directories are pruned so their contents are never
// visited. The root itself is not reported. Unreadable subtrees produce a
// warning on stderr and are skipped rather than aborting the walk.
func Collect(rootPath string, matcher *ignore.Matcher) ([]types.PathEntry, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	var pathEntries []types.PathEntry

	directoryWalkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			fmt.Fprintf(os.Stderr, warningAccessPathFormat, walkedPath, accessError)
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)
		if relativePath == "." {
			return nil
		}
		if !matcher.ShouldInclude(relativePath, directoryEntry.IsDir()) {
			if directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		pathEntries = append(pathEntries, types.PathEntry{
			RelativePath: relativePath,
			IsDirectory:  directoryEntry.IsDir(),
		})
		return nil
	})
	if directoryWalkError != nil {
		return nil, directoryWalkError
	}

	return pathEntries, nil
}
