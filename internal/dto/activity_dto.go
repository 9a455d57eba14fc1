package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActivityUserSignedUp  = "USER_SIGNED_UP"
	ActivityUserLoggedIn  = "USER_LOGGED_IN"
	ActivityUserLoggedOut = "USER_LOGGED_OUT"
	ActivityNoteCreated   = "NOTE_CREATED"
	ActivityNoteUpdated   = "NOTE_UPDATED"
	ActivityNoteDeleted   = "NOTE_DELETED"
)

// ActivityMessage is the payload published on the activity topic.
type ActivityMessage struct {
	Type       string     `json:"type"`
	UserId     uuid.UUID  `json:"user_id"`
	NoteId     *uuid.UUID `json:"note_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
