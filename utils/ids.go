package utils

import (
	"github.com/google/uuid"
)

// NewNoteID returns a fresh random identifier for a note document.
func NewNoteID() string {
	return uuid.NewString()
}

// NewRequestID returns an identifier for tracing a single HTTP request.
func NewRequestID() string {
	return uuid.NewString()
}
