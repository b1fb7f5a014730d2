package testutils

import "github.com/papercomputeco/marksort/pkg/bookmark"

// NewTestTree returns a root with a single bookmarks bar holding three titled
// leaves a, b and c, in that order.
func NewTestTree() *bookmark.Node {
	return bookmark.NewFolder(bookmark.RootID, "",
		bookmark.NewFolder("1", "Bookmarks bar",
			bookmark.NewLeaf("a", "A", "https://a.invalid/"),
			bookmark.NewLeaf("b", "B", "https://b.invalid/"),
			bookmark.NewLeaf("c", "C", "https://c.invalid/"),
		),
	)
}
