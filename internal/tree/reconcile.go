package tree

import (
	"os"
	"path/filepath"
	"strings"
)

// Reconcile applies a deduplicated batch of changed paths to the tree
// in arrival order. Unlike Refresh, per-path updates preserve the
// selection state of entries updated in place.
//
// A path that currently denotes a directory forces a full Refresh and
// abandons the rest of the batch: a directory-level event can stand for
// any number of descendant changes, and re-deriving the subtree is
// simpler and correct. A path that exists as a file is updated in place
// or inserted at its sorted position; a path that no longer exists is
// removed. A transient stat failure leaves that entry untouched for
// this cycle and never stops the batch.
func (t *Tree) Reconcile(paths []string) error {
	var prevPath string
	if e, ok := t.CursorEntry(); ok {
		prevPath = e.Path
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			return t.Refresh()
		case err == nil:
			t.upsertFile(path)
		case os.IsNotExist(err):
			t.removePath(path)
		default:
			// Leave the entry as it was; the next notification or a
			// manual refresh retries.
		}
	}

	// Layered on top of per-path clamping: put the cursor back on the
	// entry it was on before the batch, if that entry survived.
	if prevPath != "" {
		if i := t.indexOf(prevPath); i >= 0 {
			t.cursor = i
		}
	}
	return nil
}

// upsertFile reclassifies the file at path and updates the existing
// entry in place (keeping its selection) or inserts a new entry at the
// correct sorted position. Paths outside the overlay root are watcher
// noise and are ignored.
func (t *Tree) upsertFile(path string) {
	rel, err := filepath.Rel(t.overlayRoot, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return
	}

	e := Entry{
		Path:   path,
		Name:   filepath.Base(path),
		Depth:  strings.Count(rel, string(filepath.Separator)),
		Status: Classify(t.overlayRoot, path, t.baseRoot),
	}

	if i := t.indexOf(path); i >= 0 {
		e.Selected = t.entries[i].Selected
		e.Collapsed = t.entries[i].Collapsed
		t.entries[i] = e
		return
	}

	pos := len(t.entries)
	for i := range t.entries {
		if pathLess(path, t.entries[i].Path) {
			pos = i
			break
		}
	}
	t.entries = append(t.entries, Entry{})
	copy(t.entries[pos+1:], t.entries[pos:])
	t.entries[pos] = e
}

// pathLess orders paths component-wise, matching the scanner's
// per-directory name sort. Flat string order would place a sibling like
// "config.yaml" inside the descendant block of directory "config"
// ('.' sorts before '/'), splitting the block.
func pathLess(a, b string) bool {
	as := strings.Split(a, string(filepath.Separator))
	bs := strings.Split(b, string(filepath.Separator))
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}

// removePath drops the entry with the given exact path, if present, and
// clamps the cursor to the new length (clearing it when the tree
// empties).
func (t *Tree) removePath(path string) {
	i := t.indexOf(path)
	if i < 0 {
		return
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	if len(t.entries) == 0 {
		t.cursor = -1
		return
	}
	if t.cursor >= len(t.entries) {
		t.cursor = len(t.entries) - 1
	}
}
