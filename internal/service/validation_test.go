package service

import (
	"strings"
	"testing"

	"notes-web/internal/dto"
	"notes-web/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	valid := dto.SignupRequest{
		Email:           "a@example.com",
		FullName:        "alice",
		Password:        "pw123456",
		ConfirmPassword: "pw123456",
	}

	tests := []struct {
		name    string
		mutate  func(r *dto.SignupRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(r *dto.SignupRequest) {}},
		{name: "name with hyphen and underscore", mutate: func(r *dto.SignupRequest) { r.FullName = "al-ice_1" }},
		{name: "missing name", mutate: func(r *dto.SignupRequest) { r.FullName = "  " }, wantMsg: "Name is required."},
		{name: "short name", mutate: func(r *dto.SignupRequest) { r.FullName = "al" }, wantMsg: "Name must be at least 3 characters."},
		{name: "long name", mutate: func(r *dto.SignupRequest) { r.FullName = strings.Repeat("a", 31) }, wantMsg: "Name must be under 30 characters."},
		{name: "name with space", mutate: func(r *dto.SignupRequest) { r.FullName = "al ice" }, wantMsg: "Name may contain letters, numbers, underscores, or hyphens only."},
		{name: "missing email", mutate: func(r *dto.SignupRequest) { r.Email = "" }, wantMsg: "Email is required."},
		{name: "email without domain dot", mutate: func(r *dto.SignupRequest) { r.Email = "a@localhost" }, wantMsg: "Invalid email format."},
		{name: "email without at", mutate: func(r *dto.SignupRequest) { r.Email = "example.com" }, wantMsg: "Invalid email format."},
		{name: "missing password", mutate: func(r *dto.SignupRequest) { r.Password = "" }, wantMsg: "Password is required."},
		{name: "short password", mutate: func(r *dto.SignupRequest) { r.Password = "pw1"; r.ConfirmPassword = "pw1" }, wantMsg: "Password must be at least 8 characters."},
		{name: "password without digit", mutate: func(r *dto.SignupRequest) { r.Password = "password"; r.ConfirmPassword = "password" }, wantMsg: "Password must include letters and numbers."},
		{name: "password without letter", mutate: func(r *dto.SignupRequest) { r.Password = "12345678"; r.ConfirmPassword = "12345678" }, wantMsg: "Password must include letters and numbers."},
		{name: "missing confirmation", mutate: func(r *dto.SignupRequest) { r.ConfirmPassword = "" }, wantMsg: "Confirm password is required."},
		{name: "mismatched confirmation", mutate: func(r *dto.SignupRequest) { r.ConfirmPassword = "pw1234567" }, wantMsg: "Passwords do not match."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validateSignup(&req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, tt.wantMsg, apperror.Message(err, ""))
		})
	}
}

func TestNormalizeNoteContent(t *testing.T) {
	got, err := normalizeNoteContent("  note  ")
	assert.NoError(t, err)
	assert.Equal(t, "note", got)

	// Length counts characters, not bytes.
	_, err = normalizeNoteContent(strings.Repeat("é", 10000))
	assert.NoError(t, err)

	_, err = normalizeNoteContent(strings.Repeat("é", 10001))
	assert.Equal(t, "Note is too long!", apperror.Message(err, ""))
}
