package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", Validation("Note is too short!"), ErrValidation},
		{"credentials", InvalidCredentials("Invalid email or password."), ErrInvalidCredentials},
		{"forbidden", Forbidden("not yours"), ErrForbidden},
		{"not found", NotFound("Note not found."), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.True(t, IsClientError(tt.err))

			wrapped := fmt.Errorf("handler: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
			assert.Equal(t, tt.err.Error(), Message(wrapped, "fallback"))
		})
	}
}

func TestMessageFallback(t *testing.T) {
	err := errors.New("disk on fire")
	assert.Equal(t, "Something went wrong.", Message(err, "Something went wrong."))
	assert.False(t, IsClientError(err))
}
