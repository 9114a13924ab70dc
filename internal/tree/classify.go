package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Classify reports whether the overlay entry at path has a counterpart
// at the same relative location under baseRoot. path must lie inside
// overlayRoot; the scanner and reconciler guarantee that, so a path
// outside the root is a programming error and panics rather than
// returning a recoverable error.
func Classify(overlayRoot, path, baseRoot string) Status {
	rel := mustRel(overlayRoot, path)
	if _, err := os.Stat(filepath.Join(baseRoot, rel)); err == nil {
		return StatusModified
	}
	return StatusNew
}

// mustRel returns path relative to root, panicking when path is not
// under root.
func mustRel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		panic(fmt.Sprintf("tree: path %q is outside overlay root %q", path, root))
	}
	return rel
}
