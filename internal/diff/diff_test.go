package diff_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruminaider/auditbox/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenerate_Header(t *testing.T) {
	dir := t.TempDir()
	base := write(t, dir, "base.txt", "same\n")
	overlay := write(t, dir, "overlay.txt", "same\n")

	lines := diff.Generate(base, overlay)
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "--- "+base, lines[0])
	assert.Equal(t, "+++ "+overlay, lines[1])
	assert.Equal(t, "", lines[2])
}

func TestGenerate_TagsLines(t *testing.T) {
	dir := t.TempDir()
	base := write(t, dir, "base.txt", "one\ntwo\nthree\n")
	overlay := write(t, dir, "overlay.txt", "one\n2\nthree\n")

	lines := diff.Generate(base, overlay)
	body := lines[3:]
	assert.Contains(t, body, " one")
	assert.Contains(t, body, "-two")
	assert.Contains(t, body, "+2")
	assert.Contains(t, body, " three")
}

func TestGenerate_MissingBaseIsAllInserted(t *testing.T) {
	dir := t.TempDir()
	overlay := write(t, dir, "overlay.txt", "alpha\nbeta\n")

	lines := diff.Generate(filepath.Join(dir, "no-such-file"), overlay)
	body := lines[3:]
	require.Len(t, body, 2)
	assert.Equal(t, "+alpha", body[0])
	assert.Equal(t, "+beta", body[1])
}

func TestGenerate_BothMissingYieldsHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	lines := diff.Generate(filepath.Join(dir, "a"), filepath.Join(dir, "b"))
	assert.Len(t, lines, 3)
}

func TestGenerate_BinaryContentDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	base := write(t, dir, "base.bin", "\xff\xfe\x00binary")
	overlay := write(t, dir, "overlay.txt", "text\n")

	lines := diff.Generate(base, overlay)
	body := lines[3:]
	require.Len(t, body, 1)
	assert.Equal(t, "+text", body[0], "binary base reads as empty, so overlay is all-inserted")
}

func TestGenerate_TrimsTrailingLineEnds(t *testing.T) {
	dir := t.TempDir()
	base := write(t, dir, "base.txt", "")
	overlay := write(t, dir, "overlay.txt", "crlf\r\n")

	lines := diff.Generate(base, overlay)
	body := lines[3:]
	require.Len(t, body, 1)
	assert.Equal(t, "+crlf", body[0])
	for _, line := range lines {
		assert.False(t, strings.HasSuffix(line, "\n"))
		assert.False(t, strings.HasSuffix(line, "\r"))
	}
}
