package main

import (
	"fmt"

	"colornotes/client"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		c, err := newClient()
		if err != nil {
			return err
		}

		if err := c.Delete(cmd.Context(), id); err != nil {
			if client.IsNotFound(err) {
				return fmt.Errorf("note %s not found", id)
			}
			return fmt.Errorf("failed to delete note: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
