package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the bottom row with change counts and keyboard
// shortcuts. A transient error notice replaces the shortcuts until it
// expires.
type StatusBar struct {
	newCount      int
	modifiedCount int
	selected      int
	pane          Pane
	errNotice     string
	width         int
}

// NewStatusBar creates a status bar with default values.
func NewStatusBar() StatusBar {
	return StatusBar{pane: PaneTree}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the counts and focused pane.
func (s *StatusBar) Update(newCount, modifiedCount, selected int, pane Pane) {
	s.newCount = newCount
	s.modifiedCount = modifiedCount
	s.selected = selected
	s.pane = pane
}

// SetError shows a transient error notice in place of the shortcuts.
func (s *StatusBar) SetError(msg string) {
	s.errNotice = msg
}

// ClearError removes the error notice.
func (s *StatusBar) ClearError() {
	s.errNotice = ""
}

// View renders the status bar.
func (s StatusBar) View() string {
	left := fmt.Sprintf("%d new · %d modified · %d selected · %s",
		s.newCount, s.modifiedCount, s.selected, s.pane.String())

	var right string
	if s.errNotice != "" {
		right = StatusBarErrorStyle.Render(s.errNotice)
	} else {
		shortcuts := []string{
			StatusBarKeyStyle.Render("Space") + ": select",
			StatusBarKeyStyle.Render("a") + ": apply",
			StatusBarKeyStyle.Render("d") + ": discard",
			StatusBarKeyStyle.Render("?") + ": help",
		}
		right = strings.Join(shortcuts, " · ")
	}

	leftWidth := ansi.StringWidth(left)
	rightWidth := ansi.StringWidth(right)
	availableWidth := s.width - 2 // account for StatusBarStyle padding
	gap := availableWidth - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	content := left + strings.Repeat(" ", gap) + right

	return StatusBarStyle.Width(s.width).Render(content)
}
