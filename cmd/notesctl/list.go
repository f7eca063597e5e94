package main

import (
	"fmt"
	"strings"

	"colornotes/model"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		notes, err := c.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(notes) == 0 {
			fmt.Fprintln(out, "No notes yet.")
			return nil
		}
		for _, n := range notes {
			first, _, _ := strings.Cut(n.Content, "\n")
			fmt.Fprintf(out, "%s  %-7s %s\n    %s\n", n.ID, model.ColorName(n.Color), n.Title, first)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
