package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// TreePaneWidth is the fixed width of the file tree pane.
const TreePaneWidth = 40

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

// Color constants extracted from the Mocha palette for convenience.
var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Tree pane styles.
var (
	// CursorRowStyle highlights the row under the cursor.
	CursorRowStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Background(colorSurface1).
			Bold(true)

	// NewFileStyle colors entries that do not exist in the base tree.
	NewFileStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// ModifiedFileStyle colors entries whose base counterpart differs.
	ModifiedFileStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	// DirStyle colors directory rows.
	DirStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	// TreePaneStyle wraps the tree column with a right border.
	TreePaneStyle = lipgloss.NewStyle().
			Width(TreePaneWidth).
			BorderRight(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorSurface1)

	// PaneTitleStyle is used for the heading above each pane.
	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			PaddingLeft(1)

	// PaneTitleBlurredStyle is the heading of the unfocused pane.
	PaneTitleBlurredStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0).
				PaddingLeft(1)

	// EmptyTreeStyle is used for the placeholder when no changes exist.
	EmptyTreeStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			PaddingLeft(1)
)

// Viewer styles.
var (
	// DiffAddStyle colors inserted diff lines.
	DiffAddStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// DiffDelStyle colors deleted diff lines.
	DiffDelStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	// DiffHeaderStyle colors the file header lines of a diff.
	DiffHeaderStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	// ViewerPlaceholderStyle is used for non-file placeholders.
	ViewerPlaceholderStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0).
				Italic(true)
)

// Status bar styles.
var (
	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)

	// StatusBarErrorStyle colors transient error notices.
	StatusBarErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Background(colorSurface0).
				Bold(true)
)

// Overlay styles.
var (
	// OverlayStyle is the border and background for modal overlays.
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	// OverlayTitleStyle is used for the title text in overlays.
	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	// OverlayButtonActiveStyle is used for the focused button in overlays.
	OverlayButtonActiveStyle = lipgloss.NewStyle().
					Foreground(colorBase).
					Background(colorBlue).
					Padding(0, 2)

	// OverlayButtonInactiveStyle is used for the unfocused button in overlays.
	OverlayButtonInactiveStyle = lipgloss.NewStyle().
					Foreground(colorText).
					Background(colorSurface1).
					Padding(0, 2)

	// OverlayKeyStyle highlights key names in the help overlay.
	OverlayKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)
)
