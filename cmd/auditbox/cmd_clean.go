package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/auditbox/internal/session"
	"github.com/spf13/cobra"
)

var cleanYes bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Discard the session: drop all overlay changes and forget it",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session.Load()
		if err != nil {
			return err
		}

		if !cleanYes {
			var confirmed bool
			confirm := huh.NewConfirm().
				Title(fmt.Sprintf("Discard all changes in %s?", s.Dir)).
				Description("The overlay contents are deleted and cannot be recovered.").
				Value(&confirmed)
			if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := os.RemoveAll(s.Dir); err != nil {
			return fmt.Errorf("removing session directory: %w", err)
		}
		if err := session.Clear(); err != nil {
			return err
		}

		fmt.Println("Session discarded.")
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "skip the confirmation prompt")
}
