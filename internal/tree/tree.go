// Package tree builds and renders the directory structure of filtered paths.
package tree

import (
	"io"
	"strings"

	"github.com/coderoller/coderoller/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	pathSegmentSeparator = "/"
)

// Node is one element of the rendered tree. Directories own a child list,
// possibly empty; files are leaves and never gain children. Child order is the
// order of first insertion.
type Node struct {
	Name       string
	Type       string
	Children   []*Node
	childIndex map[string]*Node
}

func newNode(name string, nodeType string) *Node {
	node := &Node{Name: name, Type: nodeType}
	if nodeType == types.NodeTypeDirectory {
		node.Children = []*Node{}
		node.childIndex = map[string]*Node{}
	}
	return node
}

// ensureChild returns the existing child with the given name or inserts a new
// one. Re-creating an already-present key is a no-op, so implicit parent
// directories may be established repeatedly without duplication.
func (node *Node) ensureChild(name string, nodeType string) *Node {
	if existingChild, exists := node.childIndex[name]; exists {
		return existingChild
	}
	childNode := newNode(name, nodeType)
	node.childIndex[name] = childNode
	node.Children = append(node.Children, childNode)
	return childNode
}

// Build constructs a nested tree from filtered path entries. Each path is split
// on the separator; intermediate components become implicit directory nodes even
// if the directory itself was never walked. Insertion order is preserved as
// encountered; callers that need determinism must sort the entries first.
func Build(pathEntries []types.PathEntry) *Node {
	rootNode := newNode("", types.NodeTypeDirectory)
	for _, pathEntry := range pathEntries {
		segments := strings.Split(pathEntry.RelativePath, pathSegmentSeparator)
		currentNode := rootNode
		for segmentIndex, segment := range segments {
			if segment == "" {
				continue
			}
			nodeType := types.NodeTypeDirectory
			if segmentIndex == len(segments)-1 && !pathEntry.IsDirectory {
				nodeType = types.NodeTypeFile
			}
			currentNode = currentNode.ensureChild(segment, nodeType)
		}
	}
	return rootNode
}

// Render returns the ASCII rendering of the tree. The synthetic root itself is
// not drawn; its children start at column zero. An empty tree renders an empty
// string.
func Render(rootNode *Node) string {
	var builder strings.Builder
	WriteTree(&builder, rootNode)
	return builder.String()
}

// WriteTree renders the tree below rootNode to the provided writer.
func WriteTree(writer io.StringWriter, rootNode *Node) {
	if rootNode == nil {
		return
	}
	renderChildren(writer, rootNode, "")
}

// renderChildren draws each child with a branch connector, giving the last child
// the terminal connector and indenting its descendants with the matching guide.
func renderChildren(writer io.StringWriter, node *Node, prefix string) {
	for childIndex, childNode := range node.Children {
		isLastChild := childIndex == len(node.Children)-1
		connector := treeBranchConnector
		childPadding := treeBranchPadding
		if isLastChild {
			connector = treeLastConnector
			childPadding = treeLastPadding
		}
		writer.WriteString(prefix + connector + childNode.Name + "\n")
		if childNode.Type == types.NodeTypeDirectory {
			renderChildren(writer, childNode, prefix+childPadding)
		}
	}
}
