package main

import (
	"fmt"
	"path/filepath"

	"github.com/ruminaider/auditbox/internal/tree"
	"github.com/spf13/cobra"
)

var (
	statusOverlay string
	statusBase    string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the changes waiting in the overlay",
	RunE: func(cmd *cobra.Command, args []string) error {
		overlay, base, err := resolveRoots(statusOverlay, statusBase)
		if err != nil {
			return err
		}

		entries, err := tree.Scan(overlay, base)
		if err != nil {
			return err
		}

		var newPaths, modifiedPaths []string
		for _, e := range entries {
			if e.IsDir {
				continue
			}
			rel, err := filepath.Rel(overlay, e.Path)
			if err != nil {
				rel = e.Path
			}
			if e.Status == tree.StatusNew {
				newPaths = append(newPaths, rel)
			} else {
				modifiedPaths = append(modifiedPaths, rel)
			}
		}

		if len(newPaths) == 0 && len(modifiedPaths) == 0 {
			fmt.Println("No changes in the overlay.")
			return nil
		}

		if len(newPaths) > 0 {
			fmt.Printf("NEW (%d)\n", len(newPaths))
			for _, p := range newPaths {
				fmt.Printf("  + %s\n", p)
			}
			fmt.Println()
		}

		if len(modifiedPaths) > 0 {
			fmt.Printf("MODIFIED (%d)\n", len(modifiedPaths))
			for _, p := range modifiedPaths {
				fmt.Printf("  ~ %s\n", p)
			}
			fmt.Println()
		}

		fmt.Println("Run 'auditbox review' to inspect and commit them.")
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusOverlay, "overlay", "", "overlay (upper) directory to inspect")
	statusCmd.Flags().StringVar(&statusBase, "base", "", "base directory the overlay sits atop")
}
