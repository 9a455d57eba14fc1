package controller

import (
	"errors"

	"notes-web/internal/dto"
	"notes-web/internal/entity"
	"notes-web/internal/pkg/apperror"
	"notes-web/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

const msgNoteNotFound = "Note not found."

// renderPage renders a template inside the base layout with the pending
// flashes and the current user.
func renderPage(ctx *fiber.Ctx, status int, name, title string, user *dto.UserResponse, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["User"] = user

	var flashes []entity.Flash
	if session := serverutils.CurrentSession(ctx); session != nil {
		flashes = session.PopFlashes()
	}
	data["Flashes"] = flashes

	return ctx.Status(status).Render(name, data)
}

// userMessage is the text shown for a client error. Foreign notes are
// reported exactly like missing ones.
func userMessage(err error) string {
	if errors.Is(err, apperror.ErrForbidden) {
		return msgNoteNotFound
	}
	return apperror.Message(err, "Something went wrong. Please try again.")
}

func redirect(ctx *fiber.Ctx, location string) error {
	return ctx.Redirect(location, fiber.StatusSeeOther)
}
