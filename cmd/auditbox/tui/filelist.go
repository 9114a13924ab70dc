package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/auditbox/internal/tree"
)

// FileList renders the visible slice of the overlay tree as an indented,
// scrollable list. Navigation state lives in the tree itself; the list
// only tracks the scroll window.
type FileList struct {
	height  int
	width   int
	offset  int
	focused bool
}

// NewFileList creates a file list with a sensible default height.
func NewFileList() FileList {
	return FileList{height: 20, width: TreePaneWidth}
}

// SetSize sets the viewport dimensions.
func (f *FileList) SetSize(w, h int) {
	f.width = w
	f.height = h
}

// SetFocused marks whether the list has keyboard focus.
func (f *FileList) SetFocused(focused bool) {
	f.focused = focused
}

// ensureVisible scrolls the window so the row at pos is on screen.
func (f *FileList) ensureVisible(pos, total int) {
	if pos < 0 {
		f.offset = 0
		return
	}
	if pos < f.offset {
		f.offset = pos
	}
	if pos >= f.offset+f.height {
		f.offset = pos - f.height + 1
	}
	if f.offset > total-f.height {
		f.offset = total - f.height
	}
	if f.offset < 0 {
		f.offset = 0
	}
}

// View renders the visible entries with the cursor row highlighted.
// cursorPos is the cursor's position within the visible slice, or -1.
func (f *FileList) View(visible []tree.VisibleEntry, cursorPos int) string {
	if len(visible) == 0 {
		return EmptyTreeStyle.Render("no changes")
	}

	f.ensureVisible(cursorPos, len(visible))

	end := f.offset + f.height
	if end > len(visible) {
		end = len(visible)
	}

	var b strings.Builder
	for i := f.offset; i < end; i++ {
		b.WriteString(f.renderRow(visible[i].Entry, f.focused && i == cursorPos))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (f *FileList) renderRow(e tree.Entry, underCursor bool) string {
	indent := strings.Repeat("  ", e.Depth)

	check := "[ ] "
	if e.Selected {
		check = "[x] "
	}

	label := e.Name
	if e.IsDir {
		arrow := "▾ "
		if e.Collapsed {
			arrow = "▸ "
		}
		label = arrow + label + "/"
	}

	row := indent + check + label
	row = ansi.Truncate(row, f.width-1, "…")

	if underCursor {
		return CursorRowStyle.Render(row)
	}
	if e.IsDir {
		return DirStyle.Render(row)
	}
	switch e.Status {
	case tree.StatusNew:
		return NewFileStyle.Render(row)
	case tree.StatusModified:
		return ModifiedFileStyle.Render(row)
	}
	return row
}
