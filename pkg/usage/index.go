package usage

import (
	"strings"

	"github.com/papercomputeco/marksort/pkg/bookmark"
)

// Index buckets tracked identities by hostname so a visit only has to be
// prefix-checked against bookmarks on the same host. Identities that can
// prefix-match across hosts (bare hosts, or entries that don't parse as a
// URL) are kept aside and checked against every visit.
type Index struct {
	byHost map[string][]string
	loose  []string
	size   int
}

// NewIndex builds an index from every distinct leaf identity beneath root.
func NewIndex(root *bookmark.Node) *Index {
	idx := &Index{byHost: make(map[string][]string)}
	if root == nil {
		return idx
	}

	seen := make(map[string]bool)
	for _, leaf := range root.Leaves() {
		if seen[leaf.URL] || Normalize(leaf.URL) == "" {
			continue
		}
		seen[leaf.URL] = true
		idx.size++

		host, ok := hostKey(leaf.URL)
		if !ok || !strings.Contains(Normalize(leaf.URL), "/") {
			idx.loose = append(idx.loose, leaf.URL)
			continue
		}
		idx.byHost[host] = append(idx.byHost[host], leaf.URL)
	}

	return idx
}

// Len returns the number of distinct tracked identities in the index.
func (i *Index) Len() int {
	return i.size
}

// Match returns every tracked identity that visited belongs to. A malformed
// visited URL matches nothing.
func (i *Index) Match(visited string) []string {
	host, ok := hostKey(visited)
	if !ok {
		return nil
	}

	var matched []string
	for _, tracked := range i.byHost[host] {
		if Matches(visited, tracked) {
			matched = append(matched, tracked)
		}
	}
	for _, tracked := range i.loose {
		if Matches(visited, tracked) {
			matched = append(matched, tracked)
		}
	}

	return matched
}
