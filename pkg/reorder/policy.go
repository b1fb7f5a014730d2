// Package reorder ranks the children of every folder in a bookmark tree by
// usage and issues the single-item moves that bring the live tree into that
// order.
package reorder

import "github.com/papercomputeco/marksort/pkg/bookmark"

// Policy selects which child categories take part in sorting and whether
// non-root folders are descended into. The root's direct children are always
// visited regardless of SortFolderContents.
type Policy struct {
	SortFolders        bool `json:"sort_folders" toml:"sort_folders"`
	SortUntitled       bool `json:"sort_untitled" toml:"sort_untitled"`
	SortTitled         bool `json:"sort_titled" toml:"sort_titled"`
	SortFolderContents bool `json:"sort_folder_contents" toml:"sort_folder_contents"`
}

// DefaultPolicy sorts leaves, pins folders, and stays at the top level.
func DefaultPolicy() Policy {
	return Policy{
		SortUntitled: true,
		SortTitled:   true,
	}
}

// Eligible reports whether items of category c are reordered.
func (p Policy) Eligible(c bookmark.Category) bool {
	switch c {
	case bookmark.CategoryFolder:
		return p.SortFolders
	case bookmark.CategoryUntitled:
		return p.SortUntitled
	case bookmark.CategoryTitled:
		return p.SortTitled
	default:
		return false
	}
}

// PolicyOverride carries optional per-pass changes to a Policy. Nil fields
// keep the base value.
type PolicyOverride struct {
	SortFolders        *bool `json:"sort_folders,omitempty"`
	SortUntitled       *bool `json:"sort_untitled,omitempty"`
	SortTitled         *bool `json:"sort_titled,omitempty"`
	SortFolderContents *bool `json:"sort_folder_contents,omitempty"`
}

// Apply returns base with every set field of o written over it.
func (o PolicyOverride) Apply(base Policy) Policy {
	if o.SortFolders != nil {
		base.SortFolders = *o.SortFolders
	}
	if o.SortUntitled != nil {
		base.SortUntitled = *o.SortUntitled
	}
	if o.SortTitled != nil {
		base.SortTitled = *o.SortTitled
	}
	if o.SortFolderContents != nil {
		base.SortFolderContents = *o.SortFolderContents
	}
	return base
}
