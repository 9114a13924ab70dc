package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/auditbox/internal/fileops"
	"github.com/ruminaider/auditbox/internal/tree"
	"github.com/spf13/cobra"
)

var (
	applyOverlay string
	applyBase    string
	applyYes     bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply every overlay change to the base filesystem",
	RunE: func(cmd *cobra.Command, args []string) error {
		overlay, base, err := resolveRoots(applyOverlay, applyBase)
		if err != nil {
			return err
		}

		entries, err := tree.Scan(overlay, base)
		if err != nil {
			return err
		}

		var files []tree.Entry
		for _, e := range entries {
			if !e.IsDir {
				files = append(files, e)
			}
		}
		if len(files) == 0 {
			fmt.Println("No changes to apply.")
			return nil
		}

		if !applyYes {
			var confirmed bool
			confirm := huh.NewConfirm().
				Title(fmt.Sprintf("Apply %d file(s) to %s?", len(files), base)).
				Value(&confirmed)
			if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := fileops.Apply(files, overlay, base); err != nil {
			return err
		}

		fmt.Printf("Applied %d file(s).\n", len(files))
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVar(&applyOverlay, "overlay", "", "overlay (upper) directory to apply")
	applyCmd.Flags().StringVar(&applyBase, "base", "", "base directory the overlay sits atop")
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "skip the confirmation prompt")
}
