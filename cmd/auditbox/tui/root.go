package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/auditbox/internal/fileops"
	"github.com/ruminaider/auditbox/internal/tree"
	"github.com/ruminaider/auditbox/internal/watcher"
)

// fsTickInterval is the cadence at which pending watcher events are
// folded into the tree.
const fsTickInterval = 100 * time.Millisecond

// overlayContext tracks what the currently-active overlay was opened for.
type overlayContext int

const (
	overlayNone           overlayContext = iota
	overlayApplyConfirm                  // apply selected changes confirmation
	overlayDiscardConfirm                // discard selected changes confirmation
	overlayHelpModal                     // help modal
)

// Model is the root bubbletea model for the review screen. It owns the
// overlay tree and composes the file list, viewer, and status bar.
type Model struct {
	tree  *tree.Tree
	watch *watcher.Watcher // nil when filesystem watching is disabled

	fileList  FileList
	viewer    Viewer
	statusBar StatusBar
	overlay   Overlay

	overlayCtx    overlayContext
	activePane    Pane
	width, height int
	ready         bool // set after first WindowSizeMsg
	quitting      bool
}

// NewModel creates the review model over an already-scanned tree. The
// watcher may be nil; reconciliation then only happens on manual rescan.
func NewModel(tr *tree.Tree, watch *watcher.Watcher) Model {
	m := Model{
		tree:       tr,
		watch:      watch,
		fileList:   NewFileList(),
		viewer:     NewViewer(),
		statusBar:  NewStatusBar(),
		activePane: PaneTree,
	}
	m.syncViewer()
	m.syncStatusBar()
	return m
}

// Init satisfies tea.Model. Starts the watcher drain ticker.
func (m Model) Init() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return fsTick()
}

func fsTick() tea.Cmd {
	return tea.Tick(fsTickInterval, func(t time.Time) tea.Msg {
		return fsTickMsg(t)
	})
}

func clearErrAfter() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearErrMsg{}
	})
}

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.distributeSize()
		return m, nil

	case fsTickMsg:
		return m.handleFsTick()

	case clearErrMsg:
		m.statusBar.ClearError()
		return m, nil
	}

	// When an overlay is active, route all messages to it.
	if m.overlay.Active() {
		return m.updateOverlay(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleFsTick() (tea.Model, tea.Cmd) {
	if m.watch == nil {
		return m, nil
	}
	paths := m.watch.Drain()
	if len(paths) == 0 {
		return m, fsTick()
	}

	if err := m.tree.Reconcile(paths); err != nil {
		m.statusBar.SetError("rescan failed: " + err.Error())
		m.syncStatusBar()
		return m, tea.Batch(fsTick(), clearErrAfter())
	}

	// The shown entry may have changed on disk; rebuild its content.
	if e, ok := m.tree.CursorEntry(); ok {
		m.viewer.Refresh(e, m.tree.OverlayRoot(), m.tree.BaseRoot())
	} else {
		m.viewer.Clear()
	}
	m.syncStatusBar()
	return m, fsTick()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		if m.activePane == PaneTree {
			m.activePane = PaneViewer
		} else {
			m.activePane = PaneTree
		}
		m.syncStatusBar()
		return m, nil
	case "?":
		m.overlay = NewHelpOverlay()
		m.overlay.SetWidth(OverlayMaxWidth(m.width))
		m.overlayCtx = overlayHelpModal
		return m, nil
	case "a":
		if len(m.tree.SelectedEntries()) == 0 {
			return m, nil
		}
		m.overlay = NewConfirmOverlay("Apply changes",
			countLabel(len(m.tree.SelectedEntries()))+" will be copied to the base filesystem.")
		m.overlayCtx = overlayApplyConfirm
		return m, nil
	case "d":
		if len(m.tree.SelectedEntries()) == 0 {
			return m, nil
		}
		m.overlay = NewConfirmOverlay("Discard changes",
			countLabel(len(m.tree.SelectedEntries()))+" will be deleted from the overlay.")
		m.overlayCtx = overlayDiscardConfirm
		return m, nil
	case "r":
		return m.rescan()
	}

	if m.activePane == PaneViewer {
		return m.updateViewer(msg)
	}
	return m.updateTree(msg)
}

func (m Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.tree.MoveCursor(1)
	case "k", "up":
		m.tree.MoveCursor(-1)
	case "g", "home":
		m.tree.JumpToFirst()
	case "G", "end":
		m.tree.JumpToLast()
	case " ":
		m.tree.ToggleSelectionAtCursor()
	case "h", "left":
		m.tree.CollapseAtCursor()
	case "l", "right":
		m.tree.ExpandAtCursor()
	case "esc":
		m.quitting = true
		return m, tea.Quit
	}
	m.syncViewer()
	m.syncStatusBar()
	return m, nil
}

func (m Model) updateViewer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.activePane = PaneTree
		m.syncStatusBar()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	return m, cmd
}

func (m Model) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	wasActive := m.overlay.Active()
	var cmd tea.Cmd
	m.overlay, cmd = m.overlay.Update(msg)

	if wasActive && !m.overlay.Active() && cmd != nil {
		if closeMsg := extractOverlayClose(cmd); closeMsg != nil {
			return m.handleOverlayClose(*closeMsg)
		}
	}
	return m, cmd
}

func (m Model) handleOverlayClose(msg OverlayCloseMsg) (tea.Model, tea.Cmd) {
	ctx := m.overlayCtx
	m.overlayCtx = overlayNone

	switch ctx {
	case overlayApplyConfirm:
		if msg.Confirmed {
			return m.applySelected()
		}
	case overlayDiscardConfirm:
		if msg.Confirmed {
			return m.discardSelected()
		}
	case overlayHelpModal:
		// No-op, just dismiss.
	}
	return m, nil
}

func (m Model) applySelected() (tea.Model, tea.Cmd) {
	err := fileops.Apply(m.tree.SelectedEntries(), m.tree.OverlayRoot(), m.tree.BaseRoot())

	var cmds []tea.Cmd
	if err != nil {
		m.statusBar.SetError("apply stopped: " + err.Error())
		cmds = append(cmds, clearErrAfter())
	}

	// Entries up to the failure are gone from the overlay either way.
	if rerr := m.tree.Refresh(); rerr != nil {
		m.statusBar.SetError("rescan failed: " + rerr.Error())
		cmds = append(cmds, clearErrAfter())
	}
	m.syncViewer()
	m.syncStatusBar()
	return m, tea.Batch(cmds...)
}

func (m Model) discardSelected() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, e := range m.tree.SelectedEntries() {
		if err := fileops.Discard(e.Path); err != nil {
			m.statusBar.SetError("discard stopped: " + err.Error())
			cmds = append(cmds, clearErrAfter())
			break
		}
	}

	if rerr := m.tree.Refresh(); rerr != nil {
		m.statusBar.SetError("rescan failed: " + rerr.Error())
		cmds = append(cmds, clearErrAfter())
	}
	m.syncViewer()
	m.syncStatusBar()
	return m, tea.Batch(cmds...)
}

func (m Model) rescan() (tea.Model, tea.Cmd) {
	if err := m.tree.Refresh(); err != nil {
		m.statusBar.SetError("rescan failed: " + err.Error())
		m.syncStatusBar()
		return m, clearErrAfter()
	}
	m.syncViewer()
	m.syncStatusBar()
	return m, nil
}

// View satisfies tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	statusView := m.statusBar.View()
	statusBarHeight := strings.Count(statusView, "\n") + 1
	mainHeight := m.height - statusBarHeight
	paneHeight := mainHeight - 1 // pane title row

	m.fileList.SetFocused(m.activePane == PaneTree)
	m.viewer.SetFocused(m.activePane == PaneViewer)

	treeTitle := paneTitle("Changes", m.activePane == PaneTree)
	viewerTitle := paneTitle(m.viewerTitle(), m.activePane == PaneViewer)

	visible := m.tree.VisibleEntries()
	treeBody := m.fileList.View(visible, m.cursorVisiblePos(visible))
	treePane := TreePaneStyle.Height(paneHeight).Render(treeTitle + "\n" + treeBody)

	viewerPane := viewerTitle + "\n" + m.viewer.View()

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, treePane, viewerPane)
	frame := mainArea + "\n" + statusView

	if m.overlay.Active() {
		return Composite(frame, m.overlay.View(), m.width, m.height)
	}
	return frame
}

func paneTitle(title string, focused bool) string {
	if focused {
		return PaneTitleStyle.Render(title)
	}
	return PaneTitleBlurredStyle.Render(title)
}

func (m Model) viewerTitle() string {
	e, ok := m.tree.CursorEntry()
	if !ok {
		return "Viewer"
	}
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name + " (" + e.Status.String() + ")"
}

// cursorVisiblePos returns the cursor's position within the visible
// slice, or -1 when the tree is empty.
func (m Model) cursorVisiblePos(visible []tree.VisibleEntry) int {
	cursor := m.tree.Cursor()
	for i, v := range visible {
		if v.Index == cursor {
			return i
		}
	}
	return -1
}

// --- Sync helpers ---

func (m *Model) syncViewer() {
	if e, ok := m.tree.CursorEntry(); ok {
		m.viewer.Show(e, m.tree.OverlayRoot(), m.tree.BaseRoot())
	} else {
		m.viewer.Clear()
	}
}

func (m *Model) syncStatusBar() {
	var newCount, modCount int
	for _, e := range m.tree.Entries() {
		if e.IsDir {
			continue
		}
		switch e.Status {
		case tree.StatusNew:
			newCount++
		case tree.StatusModified:
			modCount++
		}
	}
	m.statusBar.Update(newCount, modCount, len(m.tree.SelectedEntries()), m.activePane)
}

// --- Size distribution ---

func (m *Model) distributeSize() {
	statusBarHeight := 1
	paneHeight := m.height - statusBarHeight - 1 // pane title row

	m.fileList.SetSize(TreePaneWidth, paneHeight)

	viewerWidth := m.width - TreePaneWidth - 2 // tree border and padding
	if viewerWidth < 10 {
		viewerWidth = 10
	}
	m.viewer.SetSize(viewerWidth, paneHeight)

	m.statusBar.SetWidth(m.width)
	m.overlay.SetWidth(OverlayMaxWidth(m.width))
}

func countLabel(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

// extractOverlayClose runs a tea.Cmd synchronously to extract the close
// message it produces. Safe because overlay commands are simple closures.
func extractOverlayClose(cmd tea.Cmd) *OverlayCloseMsg {
	if cmd == nil {
		return nil
	}
	if m, ok := cmd().(OverlayCloseMsg); ok {
		return &m
	}
	return nil
}

// Ensure Model satisfies tea.Model at compile time.
var _ tea.Model = Model{}
