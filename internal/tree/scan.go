package tree

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scan walks the overlay root and returns the flattened entry sequence:
// depth-first pre-order, each directory immediately followed by its
// descendants, siblings in lexicographic path order. A root that cannot
// be read is fatal; an unreadable subdirectory is skipped so one bad
// subtree never aborts the scan of its siblings.
func Scan(overlayRoot, baseRoot string) ([]Entry, error) {
	var entries []Entry
	if err := scanDir(overlayRoot, overlayRoot, baseRoot, 0, &entries); err != nil {
		return nil, fmt.Errorf("scanning overlay root: %w", err)
	}
	return entries, nil
}

func scanDir(overlayRoot, dir, baseRoot string, depth int, entries *[]Entry) error {
	// os.ReadDir returns entries sorted by filename.
	items, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, item := range items {
		path := filepath.Join(dir, item.Name())
		*entries = append(*entries, Entry{
			Path:   path,
			Name:   item.Name(),
			IsDir:  item.IsDir(),
			Depth:  depth,
			Status: Classify(overlayRoot, path, baseRoot),
		})
		if item.IsDir() {
			// Best-effort below the root.
			_ = scanDir(overlayRoot, path, baseRoot, depth+1, entries)
		}
	}
	return nil
}
