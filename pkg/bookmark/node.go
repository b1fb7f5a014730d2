// Package bookmark defines the hierarchy model that the reordering engine and
// usage attribution operate on.
package bookmark

import "strings"

// RootID is the reserved id of the synthetic root folder in the Chrome
// bookmark shape. Items directly under the root are never relocated.
const RootID = "0"

// Kind tags a Node as either a folder or a leaf.
type Kind int

const (
	// KindFolder is a node that holds children and has no identity.
	KindFolder Kind = iota

	// KindLeaf is a node that points at a single identity (URL).
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is a single element of the bookmark hierarchy.
type Node struct {
	// ID is the opaque identifier assigned by the tree store.
	ID string `json:"id"`

	// Kind tags the node as a folder or a leaf.
	Kind Kind `json:"-"`

	// Title is the display title. It may be empty or whitespace-only.
	Title string `json:"title"`

	// URL is the identity of a leaf. Empty for folders.
	URL string `json:"url,omitempty"`

	// Children is the ordered child list of a folder. Always nil for leaves.
	Children []*Node `json:"children,omitempty"`
}

// NewFolder creates a folder node with the given children.
func NewFolder(id, title string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}

	return &Node{
		ID:       id,
		Kind:     KindFolder,
		Title:    title,
		Children: children,
	}
}

// NewLeaf creates a leaf node pointing at url.
func NewLeaf(id, title, url string) *Node {
	return &Node{
		ID:    id,
		Kind:  KindLeaf,
		Title: title,
		URL:   url,
	}
}

// IsFolder reports whether n is a folder.
func (n *Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Kind == KindLeaf
}

// Category classifies n for sorting eligibility.
func (n *Node) Category() Category {
	switch {
	case n.IsFolder():
		return CategoryFolder
	case strings.TrimSpace(n.Title) == "":
		return CategoryUntitled
	default:
		return CategoryTitled
	}
}

// ChildIDs returns the ids of n's direct children in order.
func (n *Node) ChildIDs() []string {
	ids := make([]string, len(n.Children))
	for i, child := range n.Children {
		ids[i] = child.ID
	}
	return ids
}

// Walk traverses the subtree rooted at n depth-first, calling f for each node.
// If f returns false, the node's children are not visited.
func (n *Node) Walk(f func(*Node) bool) {
	if n == nil || !f(n) {
		return
	}

	for _, child := range n.Children {
		child.Walk(f)
	}
}

// Leaves returns every leaf beneath n (including n itself if it is a leaf).
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node) bool {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
		return true
	})
	return leaves
}

// Find returns the node with the given id beneath n, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{
		ID:    n.ID,
		Kind:  n.Kind,
		Title: n.Title,
		URL:   n.URL,
	}

	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}

	return c
}
