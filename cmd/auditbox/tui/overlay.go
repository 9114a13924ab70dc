package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayType identifies the kind of modal overlay.
type OverlayType int

const (
	OverlayConfirm OverlayType = iota // Yes/No confirmation
	OverlayHelp                       // key binding reference
)

// Overlay renders a centered modal box on top of existing content.
type Overlay struct {
	overlayType OverlayType
	title       string
	message     string
	cursor      int // button index: 0=Cancel, 1=OK
	width       int
	active      bool
}

// NewConfirmOverlay creates a confirmation dialog with Cancel/OK buttons.
// The cursor starts on Cancel; apply and discard should take a deliberate
// keystroke.
func NewConfirmOverlay(title, message string) Overlay {
	return Overlay{
		overlayType: OverlayConfirm,
		title:       title,
		message:     message,
		cursor:      0,
		active:      true,
	}
}

// NewHelpOverlay creates the key binding reference modal.
func NewHelpOverlay() Overlay {
	return Overlay{
		overlayType: OverlayHelp,
		title:       "Keys",
		active:      true,
	}
}

// Active returns whether the overlay is currently shown.
func (o Overlay) Active() bool {
	return o.active
}

// Update handles key messages for the overlay.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.active {
		return o, nil
	}
	if o.overlayType == OverlayHelp {
		return o.updateHelp(msg)
	}
	return o.updateConfirm(msg)
}

func (o Overlay) updateConfirm(msg tea.Msg) (Overlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "n":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: false}
			}
		case "tab", "left", "right", "h", "l":
			o.cursor = 1 - o.cursor
		case "y":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: true}
			}
		case "enter":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: o.cursor == 1}
			}
		}
	}
	return o, nil
}

func (o Overlay) updateHelp(msg tea.Msg) (Overlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "?", "enter":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: false}
			}
		}
	}
	return o, nil
}

// View renders the overlay box. It does not composite over a background;
// that is the caller's responsibility using Composite().
func (o Overlay) View() string {
	if !o.active {
		return ""
	}
	if o.overlayType == OverlayHelp {
		return OverlayStyle.Render(o.viewHelp())
	}
	return OverlayStyle.Render(o.viewConfirm())
}

func (o Overlay) viewConfirm() string {
	msg := o.message
	// OverlayStyle's border and padding take 6 columns; wrap long
	// messages (full paths) to what remains.
	if o.width > 6 {
		msg = lipgloss.NewStyle().Width(o.width - 6).Render(msg)
	}

	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	b.WriteString(msg)
	b.WriteString("\n\n")
	b.WriteString(o.renderButtons("Cancel", "OK"))
	return b.String()
}

func (o Overlay) viewHelp() string {
	rows := []struct{ key, desc string }{
		{"j/k, ↑/↓", "move cursor / scroll viewer"},
		{"space", "toggle selection"},
		{"h/l, ←/→", "collapse / expand directory"},
		{"g/G", "jump to first / last entry"},
		{"tab", "switch pane"},
		{"a", "apply selected changes"},
		{"d", "discard selected changes"},
		{"r", "rescan overlay"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(OverlayKeyStyle.Render(r.key))
		b.WriteString(strings.Repeat(" ", 12-ansi.StringWidth(r.key)))
		b.WriteString(r.desc)
		b.WriteString("\n")
	}
	return b.String()
}

// renderButtons draws two side-by-side buttons with the cursor on one.
func (o Overlay) renderButtons(cancel, ok string) string {
	var cancelBtn, okBtn string
	if o.cursor == 0 {
		cancelBtn = OverlayButtonActiveStyle.Render(cancel)
		okBtn = OverlayButtonInactiveStyle.Render(ok)
	} else {
		cancelBtn = OverlayButtonInactiveStyle.Render(cancel)
		okBtn = OverlayButtonActiveStyle.Render(ok)
	}
	return cancelBtn + "  " + okBtn
}

// SetWidth sets the overlay box width hint.
func (o *Overlay) SetWidth(w int) {
	o.width = w
}

// OverlayMaxWidth returns a reasonable maximum width for the overlay content.
func OverlayMaxWidth(termWidth int) int {
	w := termWidth * 2 / 3
	if w < 40 {
		w = 40
	}
	if w > 60 {
		w = 60
	}
	return w
}

// Composite places the overlay box centered on top of the background string.
// The background is expected to be a fully rendered terminal frame.
func Composite(background string, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayHeight := len(overlayLines)
	overlayWidth := 0
	for _, line := range overlayLines {
		w := ansi.StringWidth(line)
		if w > overlayWidth {
			overlayWidth = w
		}
	}

	startRow := (totalHeight - overlayHeight) / 2
	if startRow < 0 {
		startRow = 0
	}
	startCol := (totalWidth - overlayWidth) / 2
	if startCol < 0 {
		startCol = 0
	}

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}

		bgLine := bgLines[row]
		bgRunes := []rune(bgLine)

		leftPad := ""
		if startCol > 0 {
			if startCol <= len(bgRunes) {
				leftPad = string(bgRunes[:startCol])
			} else {
				leftPad = string(bgRunes) + strings.Repeat(" ", startCol-len(bgRunes))
			}
		}

		overlayEnd := startCol + ansi.StringWidth(overlayLine)
		rightPad := ""
		if overlayEnd < len(bgRunes) {
			rightPad = string(bgRunes[overlayEnd:])
		}

		bgLines[row] = leftPad + overlayLine + rightPad
	}

	return strings.Join(bgLines[:totalHeight], "\n")
}
