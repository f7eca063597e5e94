package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"colornotes/dto"
	"colornotes/middleware"
	"colornotes/model"
	"colornotes/usecase"
	"colornotes/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type NoteHandler struct {
	notesService *usecase.NotesService
	logger       *slog.Logger
}

func NewNoteHandler(notesService *usecase.NotesService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		notesService: notesService,
		logger:       logger,
	}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	notes, err := h.notesService.ListNotes(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Failed to fetch notes")
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	note, err := h.notesService.GetNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to fetch note")
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	input, ok := h.bindNoteInput(c)
	if !ok {
		return
	}

	note, err := h.notesService.CreateNote(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err, "Failed to create note")
		return
	}

	utils.Created(c, utils.ResourceURL(c, "/api/notes/"+note.ID), dto.ToNoteResponse(note))
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	input, ok := h.bindNoteInput(c)
	if !ok {
		return
	}

	note, err := h.notesService.UpdateNote(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.writeError(c, err, "Failed to update note")
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	noteID := c.Param("id")
	if err := h.notesService.DeleteNote(c.Request.Context(), noteID); err != nil {
		h.writeError(c, err, "Failed to delete note")
		return
	}

	utils.Success(c, dto.DeleteResponse{
		Message: "Note deleted successfully",
		ID:      noteID,
	})
}

// bindNoteInput decodes the request body and writes the 4xx response itself
// when it cannot. The body must be exactly one JSON object; trailing data is
// rejected.
func (h *NoteHandler) bindNoteInput(c *gin.Context) (model.NoteInput, bool) {
	var input model.NoteInput
	err := decodeNoteInput(c, &input)
	if err == nil {
		return input, true
	}

	var maxBytesErr *http.MaxBytesError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &maxBytesErr):
		utils.RequestTooLarge(c, "Request body too large")
	case errors.As(err, &validationErrs) && len(validationErrs) > 0:
		middleware.TrackError("validation")
		utils.BadRequest(c, fieldErrorMessage(validationErrs[0]))
	default:
		middleware.TrackError("validation")
		utils.BadRequest(c, "Invalid request body")
	}
	return model.NoteInput{}, false
}

func decodeNoteInput(c *gin.Context, input *model.NoteInput) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, input); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(input)
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "notecolor":
		return field + " must be one of the palette colors"
	default:
		return field + " is invalid"
	}
}

// writeError maps service errors onto status codes. Store failures are
// logged with their detail and answered with the generic message only.
func (h *NoteHandler) writeError(c *gin.Context, err error, message string) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		middleware.TrackError("validation")
		utils.BadRequest(c, validationErr.Error())
	case errors.Is(err, model.ErrNoteNotFound):
		middleware.TrackError("not_found")
		utils.NotFound(c, "Note not found")
	default:
		middleware.TrackError("store")
		h.logger.Error(message,
			"error", err,
			"request_id", c.GetString(middleware.RequestIDKey),
			"note_id", c.Param("id"),
		)
		_ = c.Error(err)
		utils.InternalError(c, message)
	}
}
