// Package form holds the state of the note form: a single draft note that
// is either new (create mode) or seeded from an existing note (edit mode).
// It has no rendering; the terminal UI and the CLI both drive it.
package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"colornotes/model"
)

var (
	// ErrEmptyDraft is returned by Submit when the trimmed title or content
	// is empty. onSubmit is not called.
	ErrEmptyDraft = errors.New("title and content are required")
	// ErrSubmitInFlight is returned while a previous submission is running.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	// ErrNotEditing is returned by Cancel in create mode.
	ErrNotEditing = errors.New("cancel is only available while editing")
	// ErrUnknownColor is returned by SelectColor for values outside the palette.
	ErrUnknownColor = errors.New("color is not in the palette")
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// SubmitFunc receives the draft exactly as typed.
type SubmitFunc func(ctx context.Context, input model.NoteInput) error

type Form struct {
	mu       sync.Mutex
	title    string
	content  string
	color    string
	mode     Mode
	inFlight bool
	onSubmit SubmitFunc
	onCancel func()
}

// New returns a form in edit mode when editing is non-nil, seeded from it,
// and in create mode otherwise. The mode never changes afterwards.
func New(editing *model.NoteInput, onSubmit SubmitFunc, onCancel func()) *Form {
	f := &Form{
		color:    model.DefaultColor,
		onSubmit: onSubmit,
		onCancel: onCancel,
	}
	if editing != nil {
		f.mode = ModeEdit
		f.title = editing.Title
		f.content = editing.Content
		if editing.Color != "" {
			f.color = editing.Color
		}
	}
	return f
}

func (f *Form) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

func (f *Form) Title() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title
}

func (f *Form) Content() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

func (f *Form) Color() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.color
}

func (f *Form) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
}

func (f *Form) SetContent(content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = content
}

// SelectColor replaces the current color. Only palette values are accepted.
func (f *Form) SelectColor(color string) error {
	idx := model.PaletteIndex(color)
	if idx < 0 {
		return ErrUnknownColor
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.color = model.Palette[idx]
	return nil
}

// Draft returns the current field values.
func (f *Form) Draft() model.NoteInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draftLocked()
}

func (f *Form) draftLocked() model.NoteInput {
	return model.NoteInput{
		Title:   f.title,
		Content: f.content,
		Color:   f.color,
	}
}

func (f *Form) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// CanSubmit reports whether Submit would call onSubmit right now.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.inFlight && f.completeLocked()
}

func (f *Form) completeLocked() bool {
	return strings.TrimSpace(f.title) != "" && strings.TrimSpace(f.content) != ""
}

// SubmitLabel is the caption of the submit action for the current mode.
func (f *Form) SubmitLabel() string {
	if f.Mode() == ModeEdit {
		return "Update"
	}
	return "Add Note"
}

// Begin validates the draft and marks a submission in flight. Callers that
// submit asynchronously must call Finish with the outcome.
func (f *Form) Begin() (model.NoteInput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return model.NoteInput{}, ErrSubmitInFlight
	}
	if !f.completeLocked() {
		return model.NoteInput{}, ErrEmptyDraft
	}
	f.inFlight = true
	return f.draftLocked(), nil
}

// Finish clears the in-flight flag. After a successful create the draft is
// reset so the next note can be typed straight away; edit mode keeps the
// values and leaves closing the form to the caller.
func (f *Form) Finish(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inFlight = false
	if err == nil && f.mode == ModeCreate {
		f.title = ""
		f.content = ""
		f.color = model.DefaultColor
	}
}

// Submit runs Begin, onSubmit and Finish in sequence.
func (f *Form) Submit(ctx context.Context) error {
	input, err := f.Begin()
	if err != nil {
		return err
	}

	if f.onSubmit != nil {
		err = f.onSubmit(ctx, input)
	}
	f.Finish(err)
	return err
}

// Cancel invokes the cancel callback without submitting. It is only
// available in edit mode.
func (f *Form) Cancel() error {
	if f.Mode() != ModeEdit {
		return ErrNotEditing
	}
	if f.onCancel != nil {
		f.onCancel()
	}
	return nil
}
