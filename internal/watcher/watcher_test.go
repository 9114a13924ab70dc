package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruminaider/auditbox/internal/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatcher(t *testing.T, root string) *watcher.Watcher {
	t.Helper()
	w, err := watcher.New(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

// drainUntil polls Drain until the predicate is satisfied by the
// accumulated paths, failing the test on timeout.
func drainUntil(t *testing.T, w *watcher.Watcher, pred func(seen map[string]int) bool) map[string]int {
	t.Helper()
	seen := make(map[string]int)
	require.Eventually(t, func() bool {
		for _, p := range w.Drain() {
			seen[p]++
		}
		return pred(seen)
	}, 5*time.Second, 20*time.Millisecond)
	return seen
}

func TestWatcher_ReportsCreatedFile(t *testing.T) {
	root := t.TempDir()
	w := newWatcher(t, root)

	path := filepath.Join(root, "new.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	drainUntil(t, w, func(seen map[string]int) bool {
		return seen[path] > 0
	})
}

func TestWatcher_ReportsRemovedFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "doomed.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	w := newWatcher(t, root)

	require.NoError(t, os.Remove(path))

	drainUntil(t, w, func(seen map[string]int) bool {
		return seen[path] > 0
	})
}

func TestWatcher_ReportsExistingSubdirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	w := newWatcher(t, root)

	path := filepath.Join(root, "sub", "inner.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	drainUntil(t, w, func(seen map[string]int) bool {
		return seen[path] > 0
	})
}

// A directory created after the watcher starts is registered from its
// create event, so files written inside it are still reported.
func TestWatcher_FollowsNewSubdirectory(t *testing.T) {
	root := t.TempDir()
	w := newWatcher(t, root)

	sub := filepath.Join(root, "later")
	require.NoError(t, os.Mkdir(sub, 0755))
	drainUntil(t, w, func(seen map[string]int) bool {
		return seen[sub] > 0
	})

	path := filepath.Join(sub, "inner.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	drainUntil(t, w, func(seen map[string]int) bool {
		return seen[path] > 0
	})
}

func TestWatcher_DedupesWithinABatch(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "hot.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))
	w := newWatcher(t, root)

	// Repeated writes before the first drain collapse to one entry.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("b"), 0644))
	}
	time.Sleep(200 * time.Millisecond)

	batch := w.Drain()
	count := 0
	for _, p := range batch {
		if p == path {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestWatcher_DrainEmptyReturnsNil(t *testing.T) {
	w := newWatcher(t, t.TempDir())
	assert.Nil(t, w.Drain())
}
