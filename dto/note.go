package dto

import (
	"time"

	"colornotes/model"
	"colornotes/utils"
)

// NoteResponse is the wire shape of a note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeleteResponse acknowledges a deleted note.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string      `json:"status"`
	Store     string      `json:"store"`
	NoteCount int         `json:"noteCount"`
	Uptime    string      `json:"uptime"`
	System    SystemStats `json:"system"`
	// Pool is only filled when the server talks to a real MongoDB.
	Pool *utils.MongoMetrics `json:"pool,omitempty"`
}

// SystemStats is a snapshot of host resource usage.
type SystemStats struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
}

// Convert a single note to NoteResponse
func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Color:     note.Color,
		CreatedAt: note.CreatedAt.UTC(),
		UpdatedAt: note.UpdatedAt.UTC(),
	}
}

// Convert slice of notes to slice of NoteResponse. The result is never nil
// so an empty collection encodes as [].
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
