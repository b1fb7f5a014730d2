package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrAmbiguousNode is returned when a decoded node carries both an identity
// and children, or neither.
var ErrAmbiguousNode = errors.New("node must have either a url or children")

type leafWire struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type folderWire struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Children []*Node `json:"children"`
}

type nodeWire struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Children []*Node `json:"children"`
}

// MarshalJSON encodes the node in the host tree shape: leaves carry "url",
// folders always carry "children" (possibly empty).
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.IsLeaf() {
		return json.Marshal(leafWire{ID: n.ID, Title: n.Title, URL: n.URL})
	}

	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(folderWire{ID: n.ID, Title: n.Title, Children: children})
}

// UnmarshalJSON decodes the host tree shape and tags the node kind from the
// presence of "url" or "children".
func (n *Node) UnmarshalJSON(data []byte) error {
	var w nodeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	hasURL := w.URL != ""
	hasChildren := w.Children != nil

	switch {
	case hasURL && hasChildren:
		return fmt.Errorf("node %q: %w", w.ID, ErrAmbiguousNode)
	case hasURL:
		*n = Node{ID: w.ID, Kind: KindLeaf, Title: w.Title, URL: w.URL}
	case hasChildren:
		*n = Node{ID: w.ID, Kind: KindFolder, Title: w.Title, Children: w.Children}
	default:
		return fmt.Errorf("node %q: %w", w.ID, ErrAmbiguousNode)
	}

	return nil
}

// Decode parses a JSON-encoded tree rooted at a single node.
func Decode(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding bookmark tree: %w", err)
	}
	return &root, nil
}
