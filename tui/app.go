// Package tui is the interactive terminal front end: a list of notes and
// the note form for creating and editing them.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"colornotes/dto"
	"colornotes/form"
	"colornotes/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 10 * time.Second

// API is the subset of client.Client the UI calls.
type API interface {
	List(ctx context.Context) ([]dto.NoteResponse, error)
	Create(ctx context.Context, input model.NoteInput) (*dto.NoteResponse, error)
	Update(ctx context.Context, id string, input model.NoteInput) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id string) error
}

type screen int

const (
	screenList screen = iota
	screenForm
)

// Messages produced by API commands.
type (
	notesLoadedMsg struct {
		notes []dto.NoteResponse
		err   error
	}
	submitDoneMsg struct {
		note *dto.NoteResponse
		err  error
	}
	deleteDoneMsg struct {
		id  string
		err error
	}
)

// noteItem adapts a note to bubbles/list.Item
type noteItem struct {
	note dto.NoteResponse
}

func (i noteItem) Title() string { return swatch(i.note.Color) + " " + i.note.Title }
func (i noteItem) Description() string {
	first, _, _ := strings.Cut(i.note.Content, "\n")
	return first
}
func (i noteItem) FilterValue() string { return i.note.Title }

type App struct {
	api    API
	list   list.Model
	form   *formView
	screen screen
	status string
	width  int
	height int
}

// NewApp builds the UI model on top of api.
func NewApp(api API) *App {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Notes"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("note", "notes")
	l.AdditionalShortHelpKeys = listKeys.bindings
	l.AdditionalFullHelpKeys = listKeys.bindings

	return &App{api: api, list: l}
}

// Run starts the program and blocks until the user quits.
func Run(api API) error {
	_, err := tea.NewProgram(NewApp(api), tea.WithAltScreen()).Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return a.loadNotes()
}

func (a *App) loadNotes() tea.Cmd {
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		notes, err := api.List(ctx)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.list.SetSize(msg.Width, msg.Height-2)
		if a.form != nil {
			a.form.resize(msg.Width)
		}
		return a, nil

	case notesLoadedMsg:
		if msg.err != nil {
			a.status = fail("Failed to load notes: " + msg.err.Error())
			return a, nil
		}
		items := make([]list.Item, 0, len(msg.notes))
		for _, n := range msg.notes {
			items = append(items, noteItem{note: n})
		}
		return a, a.list.SetItems(items)

	case submitDoneMsg:
		return a, a.finishSubmit(msg)

	case deleteDoneMsg:
		if msg.err != nil {
			a.status = fail("Failed to delete note: " + msg.err.Error())
			return a, nil
		}
		a.status = ok("Note deleted")
		return a, a.loadNotes()
	}

	if a.screen == screenForm {
		return a, a.updateForm(msg)
	}
	return a, a.updateList(msg)
}

func (a *App) updateList(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && a.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(keyMsg, listKeys.Quit):
			return tea.Quit
		case key.Matches(keyMsg, listKeys.Add):
			return a.openForm("", nil)
		case key.Matches(keyMsg, listKeys.Edit):
			if it, ok := a.list.SelectedItem().(noteItem); ok {
				input := model.NoteInput{Title: it.note.Title, Content: it.note.Content, Color: it.note.Color}
				return a.openForm(it.note.ID, &input)
			}
			return nil
		case key.Matches(keyMsg, listKeys.Delete):
			if it, ok := a.list.SelectedItem().(noteItem); ok {
				return a.deleteNote(it.note.ID)
			}
			return nil
		case key.Matches(keyMsg, listKeys.Refresh):
			a.status = ""
			return a.loadNotes()
		}
	}

	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return cmd
}

func (a *App) openForm(noteID string, editing *model.NoteInput) tea.Cmd {
	a.form = newFormView(noteID, editing, a.width)
	a.screen = screenForm
	a.status = ""
	return a.form.focusCmd()
}

func (a *App) closeForm() {
	a.form = nil
	a.screen = screenList
}

func (a *App) updateForm(msg tea.Msg) tea.Cmd {
	if keyMsg, isKey := msg.(tea.KeyMsg); isKey {
		switch {
		case key.Matches(keyMsg, formKeys.Submit):
			return a.submit()
		case key.Matches(keyMsg, formKeys.Cancel):
			// Create mode has no cancel action; esc just leaves the form.
			if err := a.form.form.Cancel(); err != nil || a.form.cancelled {
				a.closeForm()
			}
			return nil
		case keyMsg.String() == "ctrl+c":
			return tea.Quit
		}
	}
	return a.form.update(msg)
}

// submit starts an API call for the draft. It returns nil, without calling
// the API, when the draft is incomplete or a call is already running.
func (a *App) submit() tea.Cmd {
	v := a.form
	v.sync()
	input, err := v.form.Begin()
	switch {
	case errors.Is(err, form.ErrEmptyDraft):
		v.status = fail("Title and content are required")
		return nil
	case errors.Is(err, form.ErrSubmitInFlight):
		return nil
	case err != nil:
		v.status = fail(err.Error())
		return nil
	}
	v.status = mutedStyle.Render("Saving…")

	api, noteID := a.api, v.noteID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var note *dto.NoteResponse
		var err error
		if noteID == "" {
			note, err = api.Create(ctx, input)
		} else {
			note, err = api.Update(ctx, noteID, input)
		}
		return submitDoneMsg{note: note, err: err}
	}
}

func (a *App) finishSubmit(msg submitDoneMsg) tea.Cmd {
	if a.form == nil {
		return nil
	}
	v := a.form
	v.form.Finish(msg.err)
	if msg.err != nil {
		v.status = fail("Failed to save note: " + msg.err.Error())
		return nil
	}

	title := ""
	if msg.note != nil {
		title = msg.note.Title
	}

	if v.form.Mode() == form.ModeEdit {
		a.closeForm()
		a.status = ok(fmt.Sprintf("Updated %q", title))
		return a.loadNotes()
	}

	v.reset()
	v.status = ok(fmt.Sprintf("Added %q", title))
	return tea.Batch(v.focusCmd(), a.loadNotes())
}

func (a *App) deleteNote(id string) tea.Cmd {
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return deleteDoneMsg{id: id, err: api.Delete(ctx, id)}
	}
}

func (a *App) View() string {
	if a.screen == screenForm && a.form != nil {
		return a.form.view()
	}
	out := a.list.View()
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
