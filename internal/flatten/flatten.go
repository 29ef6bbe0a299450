// Package flatten concatenates a filtered repository into a single Markdown document.
package flatten

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/coderoller/coderoller/internal/tree"
	"github.com/coderoller/coderoller/internal/types"
	"github.com/coderoller/coderoller/internal/utils"
)

const (
	titleFormat = "# Contents of %s source tree\n\n"

	folderStructureHeader = "## Folder Structure\n\n"
	readmeSectionHeader   = "## README\n\n"
	fileSectionFormat     = "## File: %s\n\n"

	plainFenceOpen    = "```\n"
	fenceClose        = "```\n"
	languageFenceOpen = "```%s\n"
	sectionFenceClose = "\n```\n\n"

	// readmeLanguageTag labels the README block regardless of its real extension.
	readmeLanguageTag = "markdown"
	readmePrefix      = "readme"

	// warningReadFileFormat is used when a file cannot be read during emission.
	warningReadFileFormat = "Warning: failed to read file %s: %v\n"
	// warningBinaryFileFormat is used when binary content is skipped.
	warningBinaryFileFormat = "Warning: skipping binary file %s\n"

	includedReadmeMessage = "Included README file"
	includedFileMessage   = "Included file"
	includedTreeMessage   = "Included folder structure only"
)

// Options configures document assembly for one repository.
type Options struct {
	RepositoryName string
	RootPath       string
	StructureOnly  bool
	Entries        []types.PathEntry
	Logger         *zap.Logger
}

// FindReadme returns the relative path of the first root-level entry whose name
// case-insensitively starts with "readme", or an empty string if none exists.
// Only entries that survived filtering are candidates.
func FindReadme(pathEntries []types.PathEntry) string {
	for _, pathEntry := range pathEntries {
		if pathEntry.IsDirectory {
			continue
		}
		if strings.Contains(pathEntry.RelativePath, "/") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(pathEntry.RelativePath), readmePrefix) {
			return pathEntry.RelativePath
		}
	}
	return ""
}

// EmitSections reads each included file and returns its section in entry order.
// The README path, files with unrecognized extensions, and unreadable or binary
// files are skipped; the latter two with a warning on stderr.
func EmitSections(rootPath string, pathEntries []types.PathEntry, readmePath string) []types.FileSection {
	var sections []types.FileSection
	for _, pathEntry := range pathEntries {
		if pathEntry.IsDirectory {
			continue
		}
		if readmePath != "" && pathEntry.RelativePath == readmePath {
			continue
		}
		languageTag, known := LanguageTag(filepath.Base(pathEntry.RelativePath))
		if !known {
			continue
		}
		contents, readable := readTextFile(rootPath, pathEntry.RelativePath)
		if !readable {
			continue
		}
		sections = append(sections, types.FileSection{
			RelativePath: pathEntry.RelativePath,
			LanguageTag:  languageTag,
			Contents:     contents,
		})
	}
	return sections
}

// Document assembles the flattened Markdown document. In structure-only mode the
// entries are sorted and rendered as a tree; otherwise the README section comes
// first, followed by one fenced section per included file in entry order.
func (options Options) Document() (string, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(titleFormat, options.RepositoryName))

	if options.StructureOnly {
		sortedEntries := make([]types.PathEntry, len(options.Entries))
		copy(sortedEntries, options.Entries)
		sort.Slice(sortedEntries, func(first, second int) bool {
			return sortedEntries[first].RelativePath < sortedEntries[second].RelativePath
		})
		builder.WriteString(folderStructureHeader)
		builder.WriteString(plainFenceOpen)
		builder.WriteString(tree.Render(tree.Build(sortedEntries)))
		builder.WriteString(fenceClose)
		logger.Info(includedTreeMessage)
		return builder.String(), nil
	}

	readmePath := FindReadme(options.Entries)
	if readmePath != "" {
		readmeContents, readable := readTextFile(options.RootPath, readmePath)
		if readable {
			builder.WriteString(readmeSectionHeader)
			builder.WriteString(fmt.Sprintf(languageFenceOpen, readmeLanguageTag))
			builder.WriteString(readmeContents)
			builder.WriteString(sectionFenceClose)
			logger.Info(includedReadmeMessage, zap.String("path", readmePath))
		}
	}

	for _, section := range EmitSections(options.RootPath, options.Entries, readmePath) {
		builder.WriteString(fmt.Sprintf(fileSectionFormat, section.RelativePath))
		builder.WriteString(fmt.Sprintf(languageFenceOpen, section.LanguageTag))
		builder.WriteString(section.Contents)
		builder.WriteString(sectionFenceClose)
		logger.Info(includedFileMessage, zap.String("path", section.RelativePath))
	}

	return builder.String(), nil
}

// readTextFile loads a file as text. Binary content and read failures are
// reported as warnings and yield a non-readable result.
func readTextFile(rootPath string, relativePath string) (string, bool) {
	fullPath := filepath.Join(rootPath, filepath.FromSlash(relativePath))
	fileBytes, readError := os.ReadFile(fullPath)
	if readError != nil {
		fmt.Fprintf(os.Stderr, warningReadFileFormat, fullPath, readError)
		return "", false
	}
	if utils.IsBinary(fileBytes) {
		fmt.Fprintf(os.Stderr, warningBinaryFileFormat, fullPath)
		return "", false
	}
	return string(fileBytes), true
}
