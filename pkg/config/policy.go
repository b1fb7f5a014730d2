package config

import "github.com/papercomputeco/marksort/pkg/reorder"

// ReorderPolicy converts the [policy] section into an engine policy.
func (p PolicyConfig) ReorderPolicy() reorder.Policy {
	return reorder.Policy{
		SortFolders:        p.SortFolders,
		SortUntitled:       p.SortUntitled,
		SortTitled:         p.SortTitled,
		SortFolderContents: p.SortFolderContents,
	}
}
