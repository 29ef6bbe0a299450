package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsRemote(testingInstance *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{input: "https://github.com/example/project.git", expected: true},
		{input: "http://example.com/project", expected: true},
		{input: "git@github.com:example/project.git", expected: true},
		{input: "/home/user/project", expected: false},
		{input: "./project", expected: false},
		{input: "project", expected: false},
	}

	for _, testCase := range testCases {
		if actual := IsRemote(testCase.input); actual != testCase.expected {
			testingInstance.Errorf("IsRemote(%q) = %v, expected %v", testCase.input, actual, testCase.expected)
		}
	}
}

func TestName(testingInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "https url with git suffix", input: "https://github.com/example/project.git", expected: "project"},
		{name: "https url without suffix", input: "https://github.com/example/project", expected: "project"},
		{name: "https url with trailing slash", input: "https://github.com/example/project/", expected: "project"},
		{name: "ssh address", input: "git@github.com:example/project.git", expected: "project"},
		{name: "local absolute path", input: "/home/user/project", expected: "project"},
		{name: "local path with trailing slash", input: "/home/user/project/", expected: "project"},
		{name: "current directory", input: ".", expected: "."},
		{name: "suffix trimmed only at end", input: "https://host/my.github.mirror", expected: "my.github.mirror"},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(subtest *testing.T) {
			if actual := Name(testCase.input); actual != testCase.expected {
				subtest.Errorf("Name(%q) = %q, expected %q", testCase.input, actual, testCase.expected)
			}
		})
	}
}

func TestScratchDirectoryLifecycle(testingInstance *testing.T) {
	scratch, scratchError := NewScratchDirectory()
	if scratchError != nil {
		testingInstance.Fatalf("NewScratchDirectory returned error: %v", scratchError)
	}
	scratchPath := scratch.Path()
	if _, statError := os.Stat(scratchPath); statError != nil {
		testingInstance.Fatalf("scratch directory %s not created: %v", scratchPath, statError)
	}

	markerPath := filepath.Join(scratchPath, "marker.txt")
	if writeError := os.WriteFile(markerPath, []byte("data"), 0o644); writeError != nil {
		testingInstance.Fatalf("writing marker file: %v", writeError)
	}

	if releaseError := scratch.Release(); releaseError != nil {
		testingInstance.Fatalf("Release returned error: %v", releaseError)
	}
	if _, statError := os.Stat(scratchPath); !os.IsNotExist(statError) {
		testingInstance.Errorf("scratch directory %s still exists after release", scratchPath)
	}

	// A second release must be a no-op.
	if releaseError := scratch.Release(); releaseError != nil {
		testingInstance.Errorf("second Release returned error: %v", releaseError)
	}
}

func TestResolveLocalDirectory(testingInstance *testing.T) {
	repositoryPath := testingInstance.TempDir()

	source, resolveError := Resolve(repositoryPath)
	if resolveError != nil {
		testingInstance.Fatalf("Resolve returned error: %v", resolveError)
	}
	if source.Root != repositoryPath {
		testingInstance.Errorf("Root = %q, expected %q", source.Root, repositoryPath)
	}

	// Releasing a local source must not remove the directory.
	if releaseError := source.Release(); releaseError != nil {
		testingInstance.Fatalf("Release returned error: %v", releaseError)
	}
	if _, statError := os.Stat(repositoryPath); statError != nil {
		testingInstance.Errorf("local repository removed by Release: %v", statError)
	}
}

func TestResolveMissingPath(testingInstance *testing.T) {
	missingPath := filepath.Join(testingInstance.TempDir(), "does-not-exist")
	if _, resolveError := Resolve(missingPath); resolveError == nil {
		testingInstance.Errorf("Resolve(%q) succeeded, expected error", missingPath)
	}
}

func TestResolveRejectsRegularFile(testingInstance *testing.T) {
	filePath := filepath.Join(testingInstance.TempDir(), "regular.txt")
	if writeError := os.WriteFile(filePath, []byte("content"), 0o644); writeError != nil {
		testingInstance.Fatalf("writing fixture file: %v", writeError)
	}
	if _, resolveError := Resolve(filePath); resolveError == nil {
		testingInstance.Errorf("Resolve(%q) succeeded for a regular file, expected error", filePath)
	}
}
