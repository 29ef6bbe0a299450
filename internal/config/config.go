// Package config loads ignore files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coderoller/coderoller/internal/utils"
)

// LoadGitignorePatterns reads the .gitignore file at the repository root and
// returns its patterns, one per line, with blank lines and comments removed.
// A missing file yields an empty pattern set, never an error.
//
// #nosec G304
func LoadGitignorePatterns(rootDirectoryPath string) ([]string, error) {
	gitignoreFilePath := filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName)
	fileHandle, openFileError := os.Open(gitignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading %s from %s: %w", utils.GitIgnoreFileName, rootDirectoryPath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", gitignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// CombinePatterns appends the provided exclusion patterns to the loaded ignore
// patterns, dropping blanks and duplicates while preserving order.
func CombinePatterns(ignorePatterns []string, exclusionPatterns []string) []string {
	combinedPatterns := utils.DeduplicatePatterns(ignorePatterns)
	for _, pattern := range exclusionPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if !utils.ContainsString(combinedPatterns, trimmedPattern) {
			combinedPatterns = append(combinedPatterns, trimmedPattern)
		}
	}
	return combinedPatterns
}
