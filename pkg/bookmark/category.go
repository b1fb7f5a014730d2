package bookmark

// Category is the sorting class of a child within its folder.
type Category int

const (
	// CategoryFolder is any folder.
	CategoryFolder Category = iota

	// CategoryUntitled is a leaf whose title is empty after trimming
	// whitespace (typically favicon-only bookmarks on a toolbar).
	CategoryUntitled

	// CategoryTitled is a leaf with a non-empty title.
	CategoryTitled
)

func (c Category) String() string {
	switch c {
	case CategoryFolder:
		return "folder"
	case CategoryUntitled:
		return "untitled"
	case CategoryTitled:
		return "titled"
	default:
		return "unknown"
	}
}
