package dto

import (
	"time"

	"github.com/google/uuid"
)

// NoteCommand is either a CreateNoteRequest or an UpdateNoteRequest.
// The handler picks the variant from the route it serves.
type NoteCommand interface {
	noteCommand()
}

type CreateNoteRequest struct {
	Content string
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Content string
}

func (CreateNoteRequest) noteCommand() {}
func (UpdateNoteRequest) noteCommand() {}

// CreateNoteForm is the body of POST /.
type CreateNoteForm struct {
	Note string `form:"note"`
}

// EditNoteForm is the body of POST /edit-note.
type EditNoteForm struct {
	NoteId string `form:"noteId" validate:"required,uuid"`
	Note   string `form:"note"`
}

// DeleteNoteRequest is the JSON body of POST /delete-note.
type DeleteNoteRequest struct {
	NoteId string `json:"noteId" validate:"required,uuid"`
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
