package main

import (
	"colornotes/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive note list and form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		return tui.Run(c)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
