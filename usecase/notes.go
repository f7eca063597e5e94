package usecase

import (
	"context"
	"fmt"
	"strings"

	"colornotes/middleware"
	"colornotes/model"
)

const (
	maxTitleLength   = 200
	maxContentLength = 50000
)

// NoteStore is the persistence the service needs. repository.NotesRepo
// satisfies it.
type NoteStore interface {
	Insert(ctx context.Context, input model.NoteInput) (*model.Note, error)
	FindAll(ctx context.Context) ([]*model.Note, error)
	FindByID(ctx context.Context, id string) (*model.Note, error)
	UpdateByID(ctx context.Context, id string, input model.NoteInput) (*model.Note, error)
	DeleteByID(ctx context.Context, id string) error
}

type NotesService struct {
	NotesRepo NoteStore
}

func NewNotesService(store NoteStore) *NotesService {
	return &NotesService{NotesRepo: store}
}

// ValidateNote checks input at the API boundary and fills in the default
// color. Title and content are checked trimmed but kept as sent.
func ValidateNote(input *model.NoteInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return model.NewValidationError("title", "is required")
	}
	if len(input.Title) > maxTitleLength {
		return model.NewValidationError("title", "exceeds maximum length")
	}

	if strings.TrimSpace(input.Content) == "" {
		return model.NewValidationError("content", "is required")
	}
	if len(input.Content) > maxContentLength {
		return model.NewValidationError("content", "exceeds maximum length")
	}

	input.Color = model.NormalizeColor(input.Color)
	if !model.IsPaletteColor(input.Color) {
		return model.NewValidationError("color", "must be one of the palette colors")
	}
	return nil
}

// A blank id can never match a stored note.
func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return model.ErrNoteNotFound
	}
	return nil
}

// service functions

func (svc *NotesService) ListNotes(ctx context.Context) ([]*model.Note, error) {
	notes, err := svc.NotesRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	middleware.TrackNoteOperation("list")
	return notes, nil
}

func (svc *NotesService) CreateNote(ctx context.Context, input model.NoteInput) (*model.Note, error) {
	if err := ValidateNote(&input); err != nil {
		return nil, err
	}

	note, err := svc.NotesRepo.Insert(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	middleware.TrackNoteOperation("create")
	return note, nil
}

func (svc *NotesService) GetNote(ctx context.Context, noteID string) (*model.Note, error) {
	if err := validateID(noteID); err != nil {
		return nil, err
	}

	note, err := svc.NotesRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note %s: %w", noteID, err)
	}
	return note, nil
}

func (svc *NotesService) UpdateNote(ctx context.Context, noteID string, input model.NoteInput) (*model.Note, error) {
	if err := validateID(noteID); err != nil {
		return nil, err
	}
	if err := ValidateNote(&input); err != nil {
		return nil, err
	}

	note, err := svc.NotesRepo.UpdateByID(ctx, noteID, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update note %s: %w", noteID, err)
	}
	middleware.TrackNoteOperation("update")
	return note, nil
}

func (svc *NotesService) DeleteNote(ctx context.Context, noteID string) error {
	if err := validateID(noteID); err != nil {
		return err
	}

	if err := svc.NotesRepo.DeleteByID(ctx, noteID); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", noteID, err)
	}
	middleware.TrackNoteOperation("delete")
	return nil
}
