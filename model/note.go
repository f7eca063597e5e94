package model

import (
	"time"
)

// Note is the persisted document in the notes collection.
type Note struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Color     string    `bson:"color" json:"color"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// NoteInput is the mutable part of a note. It is the body of create and
// update requests and the payload produced by the note form.
type NoteInput struct {
	Title   string `json:"title" binding:"required,notblank"`
	Content string `json:"content" binding:"required,notblank"`
	Color   string `json:"color" binding:"omitempty,notecolor"`
}

// Input returns the mutable fields of n.
func (n *Note) Input() NoteInput {
	return NoteInput{
		Title:   n.Title,
		Content: n.Content,
		Color:   n.Color,
	}
}
