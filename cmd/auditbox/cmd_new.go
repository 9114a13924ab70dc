package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruminaider/auditbox/internal/session"
	"github.com/spf13/cobra"
)

var newBase string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a session and print how to sandbox a process into it",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := filepath.Abs(newBase)
		if err != nil {
			return fmt.Errorf("resolving base directory: %w", err)
		}
		if info, err := os.Stat(base); err != nil || !info.IsDir() {
			return fmt.Errorf("base directory %s does not exist", base)
		}

		s, err := session.Create(base)
		if err != nil {
			return err
		}
		if err := session.Save(s); err != nil {
			return err
		}

		fmt.Printf("Created session %s\n\n", s.Dir)
		fmt.Println("Run the process you want to audit inside the overlay, e.g.:")
		fmt.Printf("\n  bwrap --overlay-src %s \\\n", base)
		fmt.Printf("    --overlay %s %s / \\\n", s.OverlayDir(), s.WorkDir())
		fmt.Println("    -- <command>")
		fmt.Println("\nThen inspect what it changed with 'auditbox review'.")
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newBase, "base", "/", "base directory the overlay sits atop")
}
