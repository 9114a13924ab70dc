package fileops_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ruminaider/auditbox/internal/diff"
	"github.com/ruminaider/auditbox/internal/fileops"
	"github.com/ruminaider/auditbox/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fileEntry(path string) tree.Entry {
	return tree.Entry{Path: path, Name: filepath.Base(path), Status: tree.StatusNew}
}

func TestApply_CopiesVerifiesAndRemovesSource(t *testing.T) {
	overlay := t.TempDir()
	base := t.TempDir()
	src := writeFile(t, overlay, "nested/dir/file.txt", "payload")

	err := fileops.Apply([]tree.Entry{fileEntry(src)}, overlay, base)
	require.NoError(t, err)

	dest := filepath.Join(base, "nested/dir/file.txt")
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.NoFileExists(t, src, "verified source is deleted")
}

func TestApply_OverwritesExistingBaseFile(t *testing.T) {
	overlay := t.TempDir()
	base := t.TempDir()
	src := writeFile(t, overlay, "f.txt", "new content")
	writeFile(t, base, "f.txt", "old content")

	require.NoError(t, fileops.Apply([]tree.Entry{fileEntry(src)}, overlay, base))

	data, err := os.ReadFile(filepath.Join(base, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))
}

func TestApply_VerificationFailureStopsBatch(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("relies on /dev/null swallowing writes")
	}
	overlay := t.TempDir()
	base := t.TempDir()
	f1 := writeFile(t, overlay, "f1.txt", "one")
	f2 := writeFile(t, overlay, "f2.txt", "two")
	f3 := writeFile(t, overlay, "f3.txt", "three")

	// f2's destination swallows writes and reads back empty, so the
	// copy succeeds but verification cannot.
	require.NoError(t, os.Symlink("/dev/null", filepath.Join(base, "f2.txt")))

	err := fileops.Apply(
		[]tree.Entry{fileEntry(f1), fileEntry(f2), fileEntry(f3)},
		overlay, base,
	)

	var verr *fileops.VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, f2, verr.Path)

	assert.NoFileExists(t, f1, "entry before the failure is committed")
	assert.FileExists(t, filepath.Join(base, "f1.txt"))
	assert.FileExists(t, f2, "failed entry keeps its overlay copy")
	assert.FileExists(t, f3, "entries after the failure are untouched")
	assert.NoFileExists(t, filepath.Join(base, "f3.txt"))
}

func TestApply_EmptyBatch(t *testing.T) {
	require.NoError(t, fileops.Apply(nil, t.TempDir(), t.TempDir()))
}

func TestDiscard_File(t *testing.T) {
	overlay := t.TempDir()
	path := writeFile(t, overlay, "doomed.txt", "x")

	require.NoError(t, fileops.Discard(path))
	assert.NoFileExists(t, path)
}

func TestDiscard_DirectoryRecursive(t *testing.T) {
	overlay := t.TempDir()
	writeFile(t, overlay, "dir/a.txt", "a")
	writeFile(t, overlay, "dir/sub/b.txt", "b")

	require.NoError(t, fileops.Discard(filepath.Join(overlay, "dir")))
	assert.NoDirExists(t, filepath.Join(overlay, "dir"))
}

func TestDiscard_MissingPathIsNotAnError(t *testing.T) {
	require.NoError(t, fileops.Discard(filepath.Join(t.TempDir(), "gone")))
}

// TestRoundTrip walks the whole pipeline: scan classifies one new and
// one modified file, the modified file diffs as expected, and applying
// it leaves base byte-identical to the overlay copy while emptying the
// overlay side.
func TestRoundTrip(t *testing.T) {
	overlay := t.TempDir()
	base := t.TempDir()
	writeFile(t, overlay, "a.txt", "brand new\n")
	bPath := writeFile(t, overlay, "b.txt", "changed\n")
	writeFile(t, base, "b.txt", "original\n")

	tr, err := tree.New(overlay, base)
	require.NoError(t, err)

	entries := tr.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, tree.StatusNew, entries[0].Status)
	assert.Equal(t, tree.StatusModified, entries[1].Status)

	lines := diff.Generate(filepath.Join(base, "b.txt"), bPath)
	assert.Contains(t, lines, "-original")
	assert.Contains(t, lines, "+changed")

	require.NoError(t, fileops.Apply([]tree.Entry{entries[1]}, overlay, base))

	data, err := os.ReadFile(filepath.Join(base, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "changed\n", string(data))
	assert.NoFileExists(t, bPath)
}
