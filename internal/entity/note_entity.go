package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	Content   string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// OwnedBy reports whether userId may read or change the note.
func (n *Note) OwnedBy(userId uuid.UUID) bool {
	return n.UserId == userId
}
