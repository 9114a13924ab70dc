package tree

import "strings"

// Tree is the stateful flattened overlay tree. It owns the entry
// sequence, the cursor, and all selection/collapse mutations. It is
// exclusively owned by the UI loop; nothing here is safe for concurrent
// use.
type Tree struct {
	overlayRoot string
	baseRoot    string
	entries     []Entry
	cursor      int // index into entries; -1 when the tree is empty
}

// New scans overlayRoot and builds the initial tree. The cursor starts
// on the first entry when the overlay is non-empty.
func New(overlayRoot, baseRoot string) (*Tree, error) {
	entries, err := Scan(overlayRoot, baseRoot)
	if err != nil {
		return nil, err
	}
	t := &Tree{
		overlayRoot: overlayRoot,
		baseRoot:    baseRoot,
		entries:     entries,
		cursor:      -1,
	}
	if len(entries) > 0 {
		t.cursor = 0
	}
	return t, nil
}

// OverlayRoot returns the overlay directory this tree was scanned from.
func (t *Tree) OverlayRoot() string { return t.overlayRoot }

// BaseRoot returns the base directory entries are classified against.
func (t *Tree) BaseRoot() string { return t.baseRoot }

// Len returns the number of entries in the backing sequence.
func (t *Tree) Len() int { return len(t.entries) }

// Cursor returns the cursor's index into the backing sequence, or -1
// when the tree is empty.
func (t *Tree) Cursor() int { return t.cursor }

// CursorEntry returns the entry under the cursor.
func (t *Tree) CursorEntry() (Entry, bool) {
	if t.cursor < 0 || t.cursor >= len(t.entries) {
		return Entry{}, false
	}
	return t.entries[t.cursor], true
}

// Entries exposes the backing sequence in tree order. Callers must not
// mutate it.
func (t *Tree) Entries() []Entry { return t.entries }

// VisibleEntry pairs an entry with its index in the backing sequence so
// renderers can map rows back to tree positions.
type VisibleEntry struct {
	Index int
	Entry Entry
}

// VisibleEntries returns the projection used for rendering: every entry
// with no collapsed ancestor, in tree order. It is recomputed on each
// call; collapse state changes far less often than redraws happen, and
// the walk is a single pass with a stack of collapsed ancestor paths.
func (t *Tree) VisibleEntries() []VisibleEntry {
	var visible []VisibleEntry
	var collapsed []string // collapsed ancestor paths still in scope
	for i, e := range t.entries {
		for len(collapsed) > 0 && !isUnder(e.Path, collapsed[len(collapsed)-1]) {
			collapsed = collapsed[:len(collapsed)-1]
		}
		if len(collapsed) > 0 {
			continue
		}
		visible = append(visible, VisibleEntry{Index: i, Entry: e})
		if e.IsDir && e.Collapsed {
			collapsed = append(collapsed, e.Path)
		}
	}
	return visible
}

// MoveCursor advances the cursor by dir (+1 or -1) among visible
// entries, wrapping at either end. Entries hidden by a collapsed
// ancestor are skipped. No-op on an empty tree.
func (t *Tree) MoveCursor(dir int) {
	vis := t.VisibleEntries()
	if len(vis) == 0 {
		t.cursor = -1
		return
	}
	pos := t.visiblePos(vis)
	if pos < 0 {
		// Cursor is on a hidden entry; snap to the first visible one.
		t.cursor = vis[0].Index
		return
	}
	pos = (pos + dir + len(vis)) % len(vis)
	t.cursor = vis[pos].Index
}

// JumpToFirst moves the cursor to the first visible entry.
func (t *Tree) JumpToFirst() {
	if vis := t.VisibleEntries(); len(vis) > 0 {
		t.cursor = vis[0].Index
	}
}

// JumpToLast moves the cursor to the last visible entry.
func (t *Tree) JumpToLast() {
	if vis := t.VisibleEntries(); len(vis) > 0 {
		t.cursor = vis[len(vis)-1].Index
	}
}

// ToggleSelectionAtCursor flips the selection of the entry under the
// cursor. Toggling a directory cascades the new state through its whole
// descendant block. Deselecting a file additionally clears the
// selection on every ancestor directory: a directory cannot stay marked
// while any descendant is not.
func (t *Tree) ToggleSelectionAtCursor() {
	if t.cursor < 0 || t.cursor >= len(t.entries) {
		return
	}
	e := &t.entries[t.cursor]
	state := !e.Selected
	e.Selected = state

	if e.IsDir {
		for i := t.cursor + 1; i < len(t.entries); i++ {
			child := &t.entries[i]
			if child.Depth <= e.Depth || !isUnder(child.Path, e.Path) {
				break
			}
			child.Selected = state
		}
		return
	}
	if !state {
		t.deselectAncestors(t.cursor)
	}
}

// deselectAncestors clears Selected on every directory whose subtree
// contains entries[idx]. Ancestors always precede their descendants in
// pre-order, so scanning the prefix of the sequence suffices.
func (t *Tree) deselectAncestors(idx int) {
	path := t.entries[idx].Path
	for i := 0; i < idx; i++ {
		if t.entries[i].IsDir && isUnder(path, t.entries[i].Path) {
			t.entries[i].Selected = false
		}
	}
}

// CollapseAtCursor collapses the directory under the cursor. On a file
// or an already-collapsed directory it instead moves the cursor to the
// nearest enclosing visible ancestor directory, vim-style.
func (t *Tree) CollapseAtCursor() {
	if t.cursor < 0 || t.cursor >= len(t.entries) {
		return
	}
	e := &t.entries[t.cursor]
	if e.IsDir && !e.Collapsed {
		e.Collapsed = true
		return
	}
	// The parent sits before the cursor at depth-1 on the path chain.
	for i := t.cursor - 1; i >= 0; i-- {
		p := t.entries[i]
		if p.IsDir && p.Depth == e.Depth-1 && isUnder(e.Path, p.Path) {
			t.cursor = i
			return
		}
	}
}

// ExpandAtCursor expands the collapsed directory under the cursor.
// Files and already-expanded directories are a no-op.
func (t *Tree) ExpandAtCursor() {
	if t.cursor < 0 || t.cursor >= len(t.entries) {
		return
	}
	if e := &t.entries[t.cursor]; e.IsDir && e.Collapsed {
		e.Collapsed = false
	}
}

// SelectedEntries returns the selected files in tree order. Directories
// are never committed directly; their selection only exists to cascade.
func (t *Tree) SelectedEntries() []Entry {
	var out []Entry
	for _, e := range t.entries {
		if e.Selected && !e.IsDir {
			out = append(out, e)
		}
	}
	return out
}

// Refresh rebuilds the whole sequence from disk. This is a cold
// rebuild: selection and collapse state are reset. The cursor is
// restored to the entry with the same path when it still exists,
// falling back to the top, or to no selection when the overlay is now
// empty.
func (t *Tree) Refresh() error {
	var prevPath string
	if e, ok := t.CursorEntry(); ok {
		prevPath = e.Path
	}

	entries, err := Scan(t.overlayRoot, t.baseRoot)
	if err != nil {
		return err
	}
	t.entries = entries

	if len(entries) == 0 {
		t.cursor = -1
		return nil
	}
	t.cursor = 0
	if prevPath != "" {
		if i := t.indexOf(prevPath); i >= 0 {
			t.cursor = i
		}
	}
	return nil
}

// indexOf returns the index of the entry with the given path, or -1.
func (t *Tree) indexOf(path string) int {
	for i := range t.entries {
		if t.entries[i].Path == path {
			return i
		}
	}
	return -1
}

// visiblePos returns the cursor's position within vis, or -1 when the
// cursor entry is hidden.
func (t *Tree) visiblePos(vis []VisibleEntry) int {
	for i, v := range vis {
		if v.Index == t.cursor {
			return i
		}
	}
	return -1
}

// isUnder reports whether path lies strictly inside the directory at
// prefix.
func isUnder(path, prefix string) bool {
	return strings.HasPrefix(path, prefix+"/")
}
