// Package treestore defines the host tree store that owns the live bookmark
// hierarchy. marksort only reads snapshots from it and asks it to relocate
// single nodes.
package treestore

import (
	"context"

	"github.com/papercomputeco/marksort/pkg/bookmark"
)

// Store is a bookmark hierarchy that can be snapshotted and mutated one
// relocation at a time.
type Store interface {
	// FetchTree returns a full snapshot of the hierarchy, rooted at the
	// reserved root folder. The snapshot is not affected by later moves.
	FetchTree(ctx context.Context) (*bookmark.Node, error)

	// Move relocates the node with the given id to index within its current
	// parent. The index is interpreted after the node has been removed from
	// its old position, so moving a node toward the front places it exactly
	// at index.
	Move(ctx context.Context, id string, index int) error

	// Close releases any resources held by the store.
	Close() error
}
