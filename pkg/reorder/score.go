package reorder

import (
	"github.com/papercomputeco/marksort/pkg/bookmark"
	"github.com/papercomputeco/marksort/pkg/usage"
)

// scorer computes node scores against one table snapshot. Folder sums are
// cached by node so a recursive pass scores each subtree once.
type scorer struct {
	table usage.Table
	cache map[*bookmark.Node]int64
}

func newScorer(table usage.Table) *scorer {
	return &scorer{
		table: table,
		cache: make(map[*bookmark.Node]int64),
	}
}

// score is a leaf's count, or the sum over every leaf beneath a folder.
func (s *scorer) score(n *bookmark.Node) int64 {
	if n.IsLeaf() {
		return s.table.Count(n.URL)
	}

	if v, ok := s.cache[n]; ok {
		return v
	}

	var total int64
	for _, child := range n.Children {
		total += s.score(child)
	}
	s.cache[n] = total
	return total
}

// Score returns the usage score of n under table.
func Score(n *bookmark.Node, table usage.Table) int64 {
	return newScorer(table).score(n)
}
