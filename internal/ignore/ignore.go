// Package ignore decides per-path inclusion from built-in exclusions and gitignore rules.
package ignore

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const pathSegmentSeparator = "/"

// builtinExclusions are substrings that exclude a path wherever they occur in it,
// independent of any ignore file. They are checked before gitignore patterns and
// short-circuit evaluation.
var builtinExclusions = []string{
	"build",
	"dist",
	"node_modules",
	"__pycache__",
	".flat.md",
	".lock",
	"-lock.json",
	".hidden",
}

// Matcher evaluates relative paths against built-in exclusions and a compiled
// gitignore rule set. The zero number of patterns is valid: only built-ins apply.
// A Matcher is immutable after construction and safe for repeated use.
type Matcher struct {
	gitignoreMatcher gitignore.Matcher
}

// NewMatcher compiles the provided gitignore-style pattern lines into a Matcher.
// Blank lines and comment lines are skipped. Pattern order is preserved so that
// later negation patterns may re-include previously excluded paths.
func NewMatcher(patternLines []string) *Matcher {
	parsedPatterns := make([]gitignore.Pattern, 0, len(patternLines))
	for _, patternLine := range patternLines {
		trimmedLine := strings.TrimSpace(patternLine)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		parsedPatterns = append(parsedPatterns, gitignore.ParsePattern(trimmedLine, nil))
	}
	return &Matcher{gitignoreMatcher: gitignore.NewMatcher(parsedPatterns)}
}

// ShouldInclude reports whether the slash-separated relative path survives
// filtering. Built-in substring exclusions are evaluated first; a match anywhere
// in the path excludes it immediately. Otherwise the gitignore rule set decides.
// The predicate is pure: no matcher state changes across calls.
func (matcher *Matcher) ShouldInclude(relativePath string, isDirectory bool) bool {
	if MatchesBuiltinExclusion(relativePath) {
		return false
	}
	normalizedPath := strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator)
	pathSegments := strings.Split(normalizedPath, pathSegmentSeparator)
	return !matcher.gitignoreMatcher.Match(pathSegments, isDirectory)
}

// MatchesBuiltinExclusion reports whether any built-in excluded substring occurs
// anywhere in the path. The match is substring-anywhere, not glob: a file named
// ".hidden_file.py" is excluded because it contains the literal ".hidden".
func MatchesBuiltinExclusion(relativePath string) bool {
	for _, exclusionSubstring := range builtinExclusions {
		if strings.Contains(relativePath, exclusionSubstring) {
			return true
		}
	}
	return false
}
