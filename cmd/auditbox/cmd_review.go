package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/auditbox/cmd/auditbox/tui"
	"github.com/ruminaider/auditbox/internal/session"
	"github.com/ruminaider/auditbox/internal/tree"
	"github.com/ruminaider/auditbox/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	reviewOverlay string
	reviewBase    string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactively review and commit overlay changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		overlay, base, err := resolveRoots(reviewOverlay, reviewBase)
		if err != nil {
			return err
		}

		tr, err := tree.New(overlay, base)
		if err != nil {
			return err
		}

		// Review still works without live updates; 'r' rescans manually.
		w, err := watcher.New(overlay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: filesystem watching disabled: %v\n", err)
			w = nil
		} else {
			defer w.Close()
		}

		p := tea.NewProgram(tui.NewModel(tr, w), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// resolveRoots picks the overlay and base directories from flags when
// both are given, or from the saved session otherwise. Both directories
// must exist; a review cannot start against missing roots.
func resolveRoots(overlayFlag, baseFlag string) (string, string, error) {
	var overlay, base string
	switch {
	case overlayFlag != "" && baseFlag != "":
		overlay, base = overlayFlag, baseFlag
	case overlayFlag != "" || baseFlag != "":
		return "", "", fmt.Errorf("--overlay and --base must be given together")
	default:
		s, err := session.Load()
		if err != nil {
			return "", "", err
		}
		overlay, base = s.OverlayDir(), s.Base
	}

	if info, err := os.Stat(overlay); err != nil || !info.IsDir() {
		return "", "", fmt.Errorf("overlay directory %s does not exist", overlay)
	}
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		return "", "", fmt.Errorf("base directory %s does not exist", base)
	}
	return overlay, base, nil
}

func init() {
	reviewCmd.Flags().StringVar(&reviewOverlay, "overlay", "", "overlay (upper) directory to review")
	reviewCmd.Flags().StringVar(&reviewBase, "base", "", "base directory the overlay sits atop")
}
