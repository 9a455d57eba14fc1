package entity

import (
	"time"

	"github.com/google/uuid"
)

type FlashCategory string

const (
	FlashSuccess FlashCategory = "success"
	FlashError   FlashCategory = "error"
)

type Flash struct {
	Category FlashCategory `json:"category"`
	Message  string        `json:"message"`
}

// Session is the server-side record behind the browser's session cookie.
// Anonymous sessions have a nil UserId and only carry flash messages.
type Session struct {
	Id        string     `json:"id"`
	UserId    *uuid.UUID `json:"user_id,omitempty"`
	Flashes   []Flash    `json:"flashes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	// IsNew is set until the session has been written to the store.
	IsNew bool `json:"-"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserId != nil
}

func (s *Session) AddFlash(category FlashCategory, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes returns the pending flashes and clears them, so each is shown once.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}
