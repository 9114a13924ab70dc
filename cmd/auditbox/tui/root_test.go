package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/auditbox/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendKey(m tea.Model, key string) tea.Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return updated
}

func sendSpecialKey(m tea.Model, key tea.KeyType) tea.Model {
	updated, _ := m.Update(tea.KeyMsg{Type: key})
	return updated
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// testModel builds a model over an overlay holding dir1/a.txt and z.txt,
// where z.txt modifies a base file. No watcher.
func testModel(t *testing.T) (Model, string, string) {
	t.Helper()
	overlay := t.TempDir()
	base := t.TempDir()
	writeFile(t, overlay, "dir1/a.txt", "alpha\n")
	writeFile(t, overlay, "z.txt", "changed\n")
	writeFile(t, base, "z.txt", "original\n")

	tr, err := tree.New(overlay, base)
	require.NoError(t, err)
	return NewModel(tr, nil), overlay, base
}

func TestModel_InitialState(t *testing.T) {
	m, _, _ := testModel(t)

	assert.Equal(t, PaneTree, m.activePane)
	assert.False(t, m.overlay.Active())
	assert.Equal(t, 0, m.tree.Cursor())
}

func TestModel_CursorNavigation(t *testing.T) {
	m, _, _ := testModel(t)

	var model tea.Model = m
	model = sendKey(model, "j")
	assert.Equal(t, 1, model.(Model).tree.Cursor())

	model = sendKey(model, "k")
	assert.Equal(t, 0, model.(Model).tree.Cursor())

	model = sendKey(model, "G")
	got := model.(Model)
	e, ok := got.tree.CursorEntry()
	require.True(t, ok)
	assert.Equal(t, "z.txt", e.Name)

	model = sendKey(model, "g")
	assert.Equal(t, 0, model.(Model).tree.Cursor())
}

func TestModel_SpaceTogglesSelection(t *testing.T) {
	m, _, _ := testModel(t)

	var model tea.Model = m
	model = sendKey(model, "G")
	model = sendKey(model, " ")

	got := model.(Model)
	selected := got.tree.SelectedEntries()
	require.Len(t, selected, 1)
	assert.Equal(t, "z.txt", selected[0].Name)
}

func TestModel_TabSwitchesPane(t *testing.T) {
	m, _, _ := testModel(t)

	var model tea.Model = m
	model = sendSpecialKey(model, tea.KeyTab)
	assert.Equal(t, PaneViewer, model.(Model).activePane)

	model = sendSpecialKey(model, tea.KeyTab)
	assert.Equal(t, PaneTree, model.(Model).activePane)
}

func TestModel_EscInViewerReturnsToTree(t *testing.T) {
	m, _, _ := testModel(t)

	var model tea.Model = m
	model = sendSpecialKey(model, tea.KeyTab)
	model = sendSpecialKey(model, tea.KeyEsc)
	assert.Equal(t, PaneTree, model.(Model).activePane)
}

func TestModel_ApplyWithoutSelectionIsNoop(t *testing.T) {
	m, _, _ := testModel(t)

	model := sendKey(m, "a")
	assert.False(t, model.(Model).overlay.Active())
}

func TestModel_ApplyConfirmCommitsSelection(t *testing.T) {
	m, overlay, base := testModel(t)

	var model tea.Model = m
	model = sendKey(model, "G")
	model = sendKey(model, " ")
	model = sendKey(model, "a")
	require.True(t, model.(Model).overlay.Active())
	assert.Equal(t, overlayApplyConfirm, model.(Model).overlayCtx)

	model = sendKey(model, "y")
	got := model.(Model)
	assert.False(t, got.overlay.Active())

	data, err := os.ReadFile(filepath.Join(base, "z.txt"))
	require.NoError(t, err)
	assert.Equal(t, "changed\n", string(data))
	assert.NoFileExists(t, filepath.Join(overlay, "z.txt"))

	// The refreshed tree no longer lists the applied file.
	for _, e := range got.tree.Entries() {
		assert.NotEqual(t, "z.txt", e.Name)
	}
}

func TestModel_ApplyCancelLeavesOverlayIntact(t *testing.T) {
	m, overlay, base := testModel(t)

	var model tea.Model = m
	model = sendKey(model, "G")
	model = sendKey(model, " ")
	model = sendKey(model, "a")
	model = sendSpecialKey(model, tea.KeyEsc)

	got := model.(Model)
	assert.False(t, got.overlay.Active())
	assert.FileExists(t, filepath.Join(overlay, "z.txt"))

	data, err := os.ReadFile(filepath.Join(base, "z.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(data))
}

func TestModel_DiscardConfirmDeletesFromOverlay(t *testing.T) {
	m, overlay, base := testModel(t)

	var model tea.Model = m
	model = sendKey(model, "G")
	model = sendKey(model, " ")
	model = sendKey(model, "d")
	require.True(t, model.(Model).overlay.Active())
	assert.Equal(t, overlayDiscardConfirm, model.(Model).overlayCtx)

	model = sendKey(model, "y")
	got := model.(Model)

	assert.NoFileExists(t, filepath.Join(overlay, "z.txt"))
	data, err := os.ReadFile(filepath.Join(base, "z.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(data), "base side is untouched")

	for _, e := range got.tree.Entries() {
		assert.NotEqual(t, "z.txt", e.Name)
	}
}

func TestModel_HelpOverlayOpensAndDismisses(t *testing.T) {
	m, _, _ := testModel(t)

	var model tea.Model = m
	model = sendKey(model, "?")
	got := model.(Model)
	require.True(t, got.overlay.Active())
	assert.Equal(t, OverlayHelp, got.overlay.overlayType)

	model = sendSpecialKey(model, tea.KeyEsc)
	assert.False(t, model.(Model).overlay.Active())
}

func TestModel_RescanPicksUpNewFile(t *testing.T) {
	m, overlay, _ := testModel(t)

	writeFile(t, overlay, "later.txt", "x")
	model := sendKey(m, "r")

	names := []string{}
	for _, e := range model.(Model).tree.Entries() {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "later.txt")
}

func TestModel_QuitKeys(t *testing.T) {
	m, _, _ := testModel(t)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, model.(Model).quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_FsTickWithoutWatcherIsNoop(t *testing.T) {
	m, _, _ := testModel(t)

	model, cmd := m.handleFsTick()
	assert.Nil(t, cmd)
	assert.NotNil(t, model)
}

func TestModel_StatusBarCounts(t *testing.T) {
	m, _, _ := testModel(t)

	m.syncStatusBar()
	assert.Equal(t, 1, m.statusBar.newCount)
	assert.Equal(t, 1, m.statusBar.modifiedCount)
	assert.Equal(t, 0, m.statusBar.selected)
}

func TestModel_ViewerTitleTracksCursor(t *testing.T) {
	m, _, _ := testModel(t)

	assert.Equal(t, "dir1/", m.viewerTitle())

	var model tea.Model = m
	model = sendKey(model, "G")
	assert.Equal(t, "z.txt (modified)", model.(Model).viewerTitle())
}
