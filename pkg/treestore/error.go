package treestore

import (
	"errors"
	"fmt"
)

// ErrRootChild is returned when asked to move one of the permanent folders
// that sit directly under the root.
var ErrRootChild = errors.New("cannot move a permanent root folder")

// NotFoundError is returned when a node doesn't exist in the tree.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "bookmark not found"
	}

	return "bookmark not found: " + e.ID
}

// IndexError is returned when a move targets an index outside the parent.
type IndexError struct {
	ID    string
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for %s (siblings: %d)", e.Index, e.ID, e.Len)
}
