package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"notes-web/internal/dto"
	"notes-web/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

const (
	nameMinLength     = 3
	nameMaxLength     = 30
	passwordMinLength = 8
	noteMaxLength     = 10000
)

var validate = validator.New()

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateSignup reports the first problem with the form, in the order
// the fields appear on the page.
func validateSignup(req *dto.SignupRequest) error {
	name := strings.TrimSpace(req.FullName)
	switch {
	case name == "":
		return apperror.Validation("Name is required.")
	case utf8.RuneCountInString(name) < nameMinLength:
		return apperror.Validation("Name must be at least 3 characters.")
	case utf8.RuneCountInString(name) > nameMaxLength:
		return apperror.Validation("Name must be under 30 characters.")
	case !isUsername(name):
		return apperror.Validation("Name may contain letters, numbers, underscores, or hyphens only.")
	}

	email := normalizeEmail(req.Email)
	if email == "" {
		return apperror.Validation("Email is required.")
	}
	if !looksLikeEmail(email) {
		return apperror.Validation("Invalid email format.")
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}

	switch {
	case req.ConfirmPassword == "":
		return apperror.Validation("Confirm password is required.")
	case req.ConfirmPassword != req.Password:
		return apperror.Validation("Passwords do not match.")
	}

	return nil
}

func isUsername(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

func looksLikeEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || !strings.Contains(email[at+1:], ".") {
		return false
	}
	return validate.Var(email, "email,max=150") == nil
}

func validatePassword(password string) error {
	if password == "" {
		return apperror.Validation("Password is required.")
	}
	if utf8.RuneCountInString(password) < passwordMinLength {
		return apperror.Validation("Password must be at least 8 characters.")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperror.Validation("Password must include letters and numbers.")
	}
	return nil
}

// normalizeNoteContent trims the text and rejects empty or oversized notes.
func normalizeNoteContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperror.Validation("Note is too short!")
	}
	if utf8.RuneCountInString(content) > noteMaxLength {
		return "", apperror.Validation("Note is too long!")
	}
	return content, nil
}
