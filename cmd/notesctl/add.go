package main

import (
	"context"
	"fmt"

	"colornotes/form"
	"colornotes/model"

	"github.com/spf13/cobra"
)

var (
	addTitle   string
	addContent string
	addColor   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Example: `  notesctl add --title Shopping --content "Milk, eggs" --color "#c8e6c9"
  notesctl add --title Ideas --content "..." --color green`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		var created string
		f := form.New(nil, func(ctx context.Context, input model.NoteInput) error {
			note, err := c.Create(ctx, input)
			if err != nil {
				return err
			}
			created = note.ID
			return nil
		}, nil)

		if err := fillForm(f, addTitle, addContent, addColor); err != nil {
			return err
		}
		if err := f.Submit(cmd.Context()); err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note created: %s\n", created)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "note title")
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "note content")
	addCmd.Flags().StringVar(&addColor, "color", model.DefaultColor, "palette color (hex or name)")
	rootCmd.AddCommand(addCmd)
}

// fillForm copies flag values into f. Empty title or content are left for
// Submit to reject.
func fillForm(f *form.Form, title, content, color string) error {
	f.SetTitle(title)
	f.SetContent(content)
	if color == "" {
		return nil
	}
	if err := f.SelectColor(paletteValue(color)); err != nil {
		return fmt.Errorf("%w: %q (choose from %v)", err, color, model.Palette)
	}
	return nil
}

// paletteValue maps a color name such as "green" to its hex value.
func paletteValue(color string) string {
	for _, c := range model.Palette {
		if model.ColorName(c) == color {
			return c
		}
	}
	return color
}
