package main

import (
	"context"
	"fmt"

	"colornotes/client"
	"colornotes/form"
	"colornotes/model"

	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editContent string
	editColor   string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Update a note",
	Long:  `Edit loads the note, applies the fields given as flags, and saves all fields back.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		c, err := newClient()
		if err != nil {
			return err
		}

		existing, err := c.Get(cmd.Context(), id)
		if err != nil {
			if client.IsNotFound(err) {
				return fmt.Errorf("note %s not found", id)
			}
			return err
		}

		current := model.NoteInput{Title: existing.Title, Content: existing.Content, Color: existing.Color}
		f := form.New(&current, func(ctx context.Context, input model.NoteInput) error {
			_, err := c.Update(ctx, id, input)
			return err
		}, nil)

		flags := cmd.Flags()
		title, content, color := f.Title(), f.Content(), ""
		if flags.Changed("title") {
			title = editTitle
		}
		if flags.Changed("content") {
			content = editContent
		}
		if flags.Changed("color") {
			color = editColor
		}
		if err := fillForm(f, title, content, color); err != nil {
			return err
		}

		if err := f.Submit(cmd.Context()); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %s\n", id)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "new content")
	editCmd.Flags().StringVar(&editColor, "color", "", "new palette color (hex or name)")
	rootCmd.AddCommand(editCmd)
}
