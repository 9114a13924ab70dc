// Package tree holds the flattened overlay tree: the ordered entry
// sequence scanned from the overlay directory, the cursor and selection
// state, and the reconciliation of filesystem change notifications.
package tree

// Status classifies an overlay entry against the base filesystem.
type Status int

const (
	// StatusNew marks an entry with no counterpart in the base filesystem.
	StatusNew Status = iota
	// StatusModified marks an entry whose corresponding base path exists.
	StatusModified
)

// String returns the display name for a status.
func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	default:
		return "unknown"
	}
}

// Entry is one row in the flattened tree. The backing sequence is kept
// in depth-first pre-order with siblings sorted by path, so every
// directory's descendants form a contiguous block immediately after it.
type Entry struct {
	Path      string // absolute path inside the overlay; unique within the tree
	Name      string // final path component, display only
	IsDir     bool
	Depth     int    // nesting level; direct children of the overlay root are 0
	Status    Status // computed for directories too, but only displayed for files
	Selected  bool   // marked for the next apply
	Collapsed bool   // directories only; hides the descendant block from the visible projection
}
