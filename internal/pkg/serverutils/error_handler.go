package serverutils

import (
	"errors"

	"notes-web/internal/pkg/apperror"
	"notes-web/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps service errors to HTTP status codes. Forbidden is reported
// as 404 so a caller cannot probe for other users' note ids.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden), errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the app-wide fiber.Config.ErrorHandler. Anything that
// reaches it unhandled is logged; internals are never shown to the user.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := StatusFor(err)

		message := apperror.Message(err, "Something went wrong. Please try again.")
		if code == fiber.StatusNotFound && !apperror.IsClientError(err) {
			message = "Page not found."
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("http", "Unhandled request error", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err,
			})
		}

		if WantsJSON(ctx) {
			return ctx.Status(code).JSON(ErrorResponse(code, message))
		}
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return ctx.Status(code).SendString(message)
	}
}
