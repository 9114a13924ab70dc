package tui

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/auditbox/internal/diff"
	"github.com/ruminaider/auditbox/internal/tree"
)

// Viewer shows the right-hand pane: raw content for new files, a unified
// diff for modified ones, and a placeholder for directories.
type Viewer struct {
	vp      viewport.Model
	focused bool
	shown   string // overlay path currently rendered, to skip rebuilds
}

// NewViewer creates an empty viewer.
func NewViewer() Viewer {
	return Viewer{vp: viewport.New(40, 20)}
}

// SetSize sets the viewport dimensions.
func (v *Viewer) SetSize(w, h int) {
	v.vp.Width = w
	v.vp.Height = h
}

// SetFocused marks whether the viewer has keyboard focus.
func (v *Viewer) SetFocused(focused bool) {
	v.focused = focused
}

// Show loads the content for the given entry. Re-showing the same path
// keeps the current scroll position; switching entries resets it.
func (v *Viewer) Show(e tree.Entry, overlayRoot, baseRoot string) {
	if e.Path == v.shown {
		return
	}
	v.shown = e.Path
	v.vp.SetContent(buildContent(e, overlayRoot, baseRoot))
	v.vp.GotoTop()
}

// Refresh rebuilds the content for the shown entry, keeping scroll position.
func (v *Viewer) Refresh(e tree.Entry, overlayRoot, baseRoot string) {
	if e.Path != v.shown {
		v.Show(e, overlayRoot, baseRoot)
		return
	}
	v.vp.SetContent(buildContent(e, overlayRoot, baseRoot))
}

// Clear empties the viewer.
func (v *Viewer) Clear() {
	v.shown = ""
	v.vp.SetContent("")
}

// Update routes scroll keys to the viewport.
func (v Viewer) Update(msg tea.Msg) (Viewer, tea.Cmd) {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

// View renders the viewport.
func (v Viewer) View() string {
	return v.vp.View()
}

func buildContent(e tree.Entry, overlayRoot, baseRoot string) string {
	if e.IsDir {
		return ViewerPlaceholderStyle.Render("<directory>")
	}

	if e.Status == tree.StatusModified {
		basePath := rebase(e.Path, overlayRoot, baseRoot)
		return renderDiff(diff.Generate(basePath, e.Path))
	}

	data, err := os.ReadFile(e.Path)
	if err != nil {
		return ViewerPlaceholderStyle.Render("<unreadable: " + err.Error() + ">")
	}
	if !utf8.Valid(data) {
		return ViewerPlaceholderStyle.Render("<binary file>")
	}
	return string(data)
}

// rebase re-roots an overlay path onto the base tree.
func rebase(path, overlayRoot, baseRoot string) string {
	rel, err := filepath.Rel(overlayRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(baseRoot, rel)
}

func renderDiff(lines []string) string {
	styled := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ "):
			styled[i] = DiffHeaderStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			styled[i] = DiffAddStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			styled[i] = DiffDelStyle.Render(line)
		default:
			styled[i] = line
		}
	}
	return strings.Join(styled, "\n")
}
