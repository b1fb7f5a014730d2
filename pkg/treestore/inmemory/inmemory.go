// Package inmemory provides a treestore.Store that keeps the hierarchy in
// process memory. It mirrors the relocation semantics of the browser stores
// and backs the test suites.
package inmemory

import (
	"context"
	"slices"
	"sync"

	"github.com/papercomputeco/marksort/pkg/bookmark"
	"github.com/papercomputeco/marksort/pkg/treestore"
)

// Store implements treestore.Store over an owned copy of a tree.
type Store struct {
	mu   sync.RWMutex
	root *bookmark.Node

	// moves counts successful relocations.
	moves int
}

// NewStore creates a store seeded with a copy of root.
func NewStore(root *bookmark.Node) *Store {
	if root == nil {
		root = bookmark.NewFolder(bookmark.RootID, "")
	}

	return &Store{root: root.Clone()}
}

// FetchTree returns a deep copy of the current hierarchy.
func (s *Store) FetchTree(_ context.Context) (*bookmark.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.root.Clone(), nil
}

// Move relocates id to index within its current parent.
func (s *Store) Move(_ context.Context, id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent := s.parentOf(id)
	if parent == nil {
		return treestore.NotFoundError{ID: id}
	}

	if parent == s.root {
		return treestore.ErrRootChild
	}

	from := slices.IndexFunc(parent.Children, func(n *bookmark.Node) bool { return n.ID == id })
	node := parent.Children[from]
	rest := slices.Delete(slices.Clone(parent.Children), from, from+1)

	if index < 0 || index > len(rest) {
		return treestore.IndexError{ID: id, Index: index, Len: len(rest)}
	}

	parent.Children = slices.Insert(rest, index, node)
	s.moves++
	return nil
}

// Moves returns the number of successful relocations so far.
func (s *Store) Moves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moves
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

func (s *Store) parentOf(id string) *bookmark.Node {
	var parent *bookmark.Node
	s.root.Walk(func(n *bookmark.Node) bool {
		if parent != nil {
			return false
		}
		for _, child := range n.Children {
			if child.ID == id {
				parent = n
				return false
			}
		}
		return true
	})
	return parent
}
