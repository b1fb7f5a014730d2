package reorder

// Move is a single relocation of a node to an index within its parent.
type Move struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id"`
	From     int    `json:"from"`
	To       int    `json:"to"`
}

// FailedMove is a move the tree store rejected.
type FailedMove struct {
	Move
	Error string `json:"error"`
}

// Report summarizes one pass over the tree.
type Report struct {
	// Folders is the number of folders whose children were reconciled.
	Folders int `json:"folders"`

	// Moves are the relocations applied (or, for a plan, that would be).
	Moves []Move `json:"moves"`

	// Suppressed are relocations computed for the root's direct children,
	// which are never moved.
	Suppressed []Move `json:"suppressed,omitempty"`

	// Failed are relocations the store rejected. They are not retried.
	Failed []FailedMove `json:"failed,omitempty"`

	// Missing are desired ids that could not be located in the order model.
	Missing []string `json:"missing,omitempty"`
}

func newReport() *Report {
	return &Report{Moves: []Move{}}
}
