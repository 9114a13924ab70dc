package tui

import "time"

// Pane identifies which half of the review screen has keyboard focus.
type Pane int

const (
	PaneTree   Pane = iota // file tree navigation
	PaneViewer             // content / diff viewer
)

// String returns the display name for a pane.
func (p Pane) String() string {
	switch p {
	case PaneTree:
		return "Tree"
	case PaneViewer:
		return "Viewer"
	default:
		return "Unknown"
	}
}

// fsTickMsg fires on a fixed cadence to drain the filesystem watcher.
type fsTickMsg time.Time

// clearErrMsg expires a transient status bar error notice.
type clearErrMsg struct{}

// OverlayCloseMsg is emitted when any overlay is dismissed.
type OverlayCloseMsg struct {
	Confirmed bool // true = OK, false = Cancel/Esc
}
