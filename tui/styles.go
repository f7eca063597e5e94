package tui

import (
	"colornotes/model"

	"github.com/charmbracelet/lipgloss"
)

// ------- styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("236"))
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("24"))

	// The form takes the note's own color as its background, so text on it
	// is always dark.
	formTextColor = lipgloss.Color("235")
)

func formStyle(color string, width int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(formTextColor).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)
	if width > 0 {
		style = style.Width(width)
	}
	return style
}

// swatch renders a small block in color c.
func swatch(c string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(model.NormalizeColor(c))).
		Render("  ")
}

func ok(msg string) string {
	return successStyle.Render("✔ " + msg)
}

func fail(msg string) string {
	return errorStyle.Render("✖ " + msg)
}
