// Package fileops performs the apply and discard operations on overlay
// entries. Apply is a copy with a byte-for-byte verification standing
// in for the atomicity the filesystem cannot give a cross-directory
// move; it fails closed, keeping the overlay copy whenever the
// destination cannot be proven identical.
package fileops

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruminaider/auditbox/internal/tree"
)

// VerificationError reports a destination whose bytes did not match the
// source after copying. The overlay copy is retained.
type VerificationError struct {
	Path string // overlay path of the offending entry
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed for %s: destination content does not match source", e.Path)
}

// Apply commits the given overlay files onto the base filesystem, in
// the order given. For each entry it re-roots the path onto baseRoot,
// creates missing destination parents, copies the bytes, reads both
// sides back, and deletes the overlay copy only when they compare
// equal. The first failure stops the batch: entries already committed
// stay committed, later entries stay untouched in the overlay.
func Apply(entries []tree.Entry, overlayRoot, baseRoot string) error {
	for _, entry := range entries {
		if err := applyOne(entry.Path, overlayRoot, baseRoot); err != nil {
			return err
		}
	}
	return nil
}

func applyOne(path, overlayRoot, baseRoot string) error {
	rel, err := filepath.Rel(overlayRoot, path)
	if err != nil {
		return fmt.Errorf("resolving %s against overlay root: %w", path, err)
	}
	dest := filepath.Join(baseRoot, rel)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating parent directories for %s: %w", dest, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading source %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading source %s: %w", path, err)
	}
	if err := os.WriteFile(dest, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("copying to %s: %w", dest, err)
	}

	// Read both sides back rather than trusting the buffer we wrote.
	srcBack, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("verifying source %s: %w", path, err)
	}
	destBack, err := os.ReadFile(dest)
	if err != nil {
		return fmt.Errorf("verifying destination %s: %w", dest, err)
	}
	if !bytes.Equal(srcBack, destBack) {
		return &VerificationError{Path: path}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing applied source %s: %w", path, err)
	}
	return nil
}

// Discard deletes the overlay entry at path: the file itself, or the
// directory and everything under it. A path that is already gone is
// not an error; the next reconciliation confirms the removal either
// way.
func Discard(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("inspecting %s: %w", path, err)
	}
	if info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("discarding directory %s: %w", path, err)
		}
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("discarding %s: %w", path, err)
	}
	return nil
}
