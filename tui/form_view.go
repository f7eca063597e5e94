package tui

import (
	"fmt"
	"strings"

	"colornotes/form"
	"colornotes/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field int

const (
	fieldTitle field = iota
	fieldContent
	fieldColor
	fieldCount
)

// formView renders a form.Form and feeds key input into it.
type formView struct {
	form      *form.Form
	noteID    string // set in edit mode
	title     textinput.Model
	content   textarea.Model
	focus     field
	cancelled bool
	status    string
	width     int
}

func newFormView(noteID string, editing *model.NoteInput, width int) *formView {
	v := &formView{noteID: noteID, width: width}
	v.form = form.New(editing, nil, func() { v.cancelled = true })

	v.title = textinput.New()
	v.title.Prompt = ""
	v.title.Placeholder = "Title"
	v.title.CharLimit = 200
	v.title.SetValue(v.form.Title())

	v.content = textarea.New()
	v.content.Placeholder = "Write your note..."
	v.content.ShowLineNumbers = false
	v.content.SetHeight(4)
	v.content.SetValue(v.form.Content())
	v.resize(width)

	return v
}

func (v *formView) resize(width int) {
	v.width = width
	inner := width - 8
	if inner < 20 {
		inner = 40
	}
	v.title.Width = inner
	v.content.SetWidth(inner)
}

func (v *formView) focusCmd() tea.Cmd {
	v.title.Blur()
	v.content.Blur()
	switch v.focus {
	case fieldTitle:
		return v.title.Focus()
	case fieldContent:
		return v.content.Focus()
	}
	return nil
}

// sync copies the widget values into the form.
func (v *formView) sync() {
	v.form.SetTitle(v.title.Value())
	v.form.SetContent(v.content.Value())
}

// reset copies the form values back into the widgets, after a create
// cleared the draft.
func (v *formView) reset() {
	v.title.SetValue(v.form.Title())
	v.content.SetValue(v.form.Content())
	v.focus = fieldTitle
}

func (v *formView) cycleColor(step int) {
	idx := model.PaletteIndex(v.form.Color())
	if idx < 0 {
		idx = 0
	}
	n := len(model.Palette)
	_ = v.form.SelectColor(model.Palette[((idx+step)%n+n)%n])
}

// update handles keys that edit the draft. Submit and cancel are handled by
// the app because they need the API.
func (v *formView) update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch {
		case key.Matches(keyMsg, formKeys.NextField):
			v.focus = (v.focus + 1) % fieldCount
			return v.focusCmd()
		case key.Matches(keyMsg, formKeys.PrevField):
			v.focus = (v.focus + fieldCount - 1) % fieldCount
			return v.focusCmd()
		}

		if v.focus == fieldColor {
			switch {
			case key.Matches(keyMsg, formKeys.NextColor):
				v.cycleColor(1)
			case key.Matches(keyMsg, formKeys.PrevColor):
				v.cycleColor(-1)
			default:
				s := keyMsg.String()
				if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(model.Palette) {
					_ = v.form.SelectColor(model.Palette[s[0]-'1'])
				}
			}
			return nil
		}
	}

	var cmd tea.Cmd
	switch v.focus {
	case fieldTitle:
		v.title, cmd = v.title.Update(msg)
	case fieldContent:
		v.content, cmd = v.content.Update(msg)
	}
	v.sync()
	return cmd
}

func (v *formView) label(f field, text string) string {
	if v.focus == f {
		return focusStyle.Render("› " + text)
	}
	return labelStyle.Render("  " + text)
}

func (v *formView) palette() string {
	current := v.form.Color()
	cells := make([]string, 0, len(model.Palette))
	for i, c := range model.Palette {
		marker := " "
		if c == strings.ToLower(current) {
			marker = "●"
		}
		cells = append(cells, fmt.Sprintf("%d%s%s", i+1, swatch(c), marker))
	}
	return strings.Join(cells, " ")
}

func (v *formView) view() string {
	heading := "New note"
	if v.form.Mode() == form.ModeEdit {
		heading = "Edit note"
	}

	actions := []string{"ctrl+s " + v.form.SubmitLabel()}
	if v.form.InFlight() {
		actions[0] = "Saving…"
	}
	if v.form.Mode() == form.ModeEdit {
		actions = append(actions, "esc Cancel")
	} else {
		actions = append(actions, "esc Close")
	}
	actions = append(actions, "tab next field")

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(heading),
		"",
		v.label(fieldTitle, "Title"),
		v.title.View(),
		"",
		v.label(fieldContent, "Content"),
		v.content.View(),
		"",
		v.label(fieldColor, "Color ("+model.ColorName(v.form.Color())+")"),
		v.palette(),
	)

	out := formStyle(v.form.Color(), v.width-2).Render(body) + "\n" +
		helpStyle.Render(strings.Join(actions, " • "))
	if v.status != "" {
		out += "\n" + v.status
	}
	return out
}
