package tree_test

import (
	"testing"

	"github.com/coderoller/coderoller/internal/tree"
	"github.com/coderoller/coderoller/internal/types"
)

// TestRenderEmptyTree verifies that an empty path set renders an empty string.
func TestRenderEmptyTree(testingInstance *testing.T) {
	rendered := tree.Render(tree.Build(nil))
	if rendered != "" {
		testingInstance.Errorf("expected empty rendering, got %q", rendered)
	}
}

// TestBuildCreatesImplicitParents verifies that a file path whose directory was
// never explicitly walked still produces an implicit directory node.
func TestBuildCreatesImplicitParents(testingInstance *testing.T) {
	entries := []types.PathEntry{
		{RelativePath: "src/main.py"},
	}
	expected := "└── src\n" +
		"    └── main.py\n"

	rendered := tree.Render(tree.Build(entries))
	if rendered != expected {
		testingInstance.Errorf("unexpected rendering:\n%q\nexpected:\n%q", rendered, expected)
	}
}

// TestRenderConnectors verifies branch and terminal connectors with
// continuation guides.
func TestRenderConnectors(testingInstance *testing.T) {
	entries := []types.PathEntry{
		{RelativePath: "a.txt"},
		{RelativePath: "lib", IsDirectory: true},
		{RelativePath: "lib/one.go"},
		{RelativePath: "lib/two.go"},
		{RelativePath: "z.txt"},
	}
	expected := "├── a.txt\n" +
		"├── lib\n" +
		"│   ├── one.go\n" +
		"│   └── two.go\n" +
		"└── z.txt\n"

	rendered := tree.Render(tree.Build(entries))
	if rendered != expected {
		testingInstance.Errorf("unexpected rendering:\n%q\nexpected:\n%q", rendered, expected)
	}
}

// TestBuildIsIdempotentForRepeatedDirectories verifies that re-creating an
// already-present directory key is a no-op.
func TestBuildIsIdempotentForRepeatedDirectories(testingInstance *testing.T) {
	entries := []types.PathEntry{
		{RelativePath: "pkg", IsDirectory: true},
		{RelativePath: "pkg/a.go"},
		{RelativePath: "pkg/b.go"},
	}
	expected := "└── pkg\n" +
		"    ├── a.go\n" +
		"    └── b.go\n"

	rendered := tree.Render(tree.Build(entries))
	if rendered != expected {
		testingInstance.Errorf("unexpected rendering:\n%q\nexpected:\n%q", rendered, expected)
	}
}

// TestBuildKeepsEmptyDirectories verifies that a directory without included
// files still appears in the tree.
func TestBuildKeepsEmptyDirectories(testingInstance *testing.T) {
	entries := []types.PathEntry{
		{RelativePath: "assets", IsDirectory: true},
	}
	expected := "└── assets\n"

	rendered := tree.Render(tree.Build(entries))
	if rendered != expected {
		testingInstance.Errorf("unexpected rendering:\n%q\nexpected:\n%q", rendered, expected)
	}
}

// TestBuildPreservesInsertionOrder verifies that children are rendered in the
// order their paths were first encountered.
func TestBuildPreservesInsertionOrder(testingInstance *testing.T) {
	entries := []types.PathEntry{
		{RelativePath: "zeta.txt"},
		{RelativePath: "alpha.txt"},
	}
	expected := "├── zeta.txt\n" +
		"└── alpha.txt\n"

	rendered := tree.Render(tree.Build(entries))
	if rendered != expected {
		testingInstance.Errorf("unexpected rendering:\n%q\nexpected:\n%q", rendered, expected)
	}
}
