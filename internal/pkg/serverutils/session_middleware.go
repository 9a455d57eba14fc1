package serverutils

import (
	"context"
	"strings"
	"time"

	"notes-web/internal/entity"
	"notes-web/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localsSession = "session"
	localsUserId  = "user_id"
)

// SessionStore is the part of the session service the middleware needs.
type SessionStore interface {
	Resolve(ctx context.Context, id string) (*entity.Session, error)
	Persist(ctx context.Context, session *entity.Session) (bool, error)
}

type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// SessionMiddleware loads the session named by the cookie before the handler
// runs and stores it, with a refreshed cookie, afterwards.
func SessionMiddleware(store SessionStore, cookie CookieConfig, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := ctx.Cookies(cookie.Name)

		session, err := store.Resolve(ctx.UserContext(), token)
		if err != nil {
			return err
		}
		ctx.Locals(localsSession, session)
		if session.IsAuthenticated() {
			ctx.Locals(localsUserId, *session.UserId)
		}

		handlerErr := ctx.Next()

		keep, err := store.Persist(ctx.UserContext(), session)
		if err != nil {
			log.Error("session", "Failed to persist session", map[string]interface{}{"error": err})
			if handlerErr == nil {
				handlerErr = err
			}
			return handlerErr
		}

		switch {
		case keep:
			ctx.Cookie(&fiber.Cookie{
				Name:     cookie.Name,
				Value:    session.Id,
				Path:     "/",
				MaxAge:   int(cookie.MaxAge.Seconds()),
				Secure:   cookie.Secure,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		case token != "":
			ctx.ClearCookie(cookie.Name)
		}

		return handlerErr
	}
}

func CurrentSession(ctx *fiber.Ctx) *entity.Session {
	session, _ := ctx.Locals(localsSession).(*entity.Session)
	return session
}

// CurrentUserId returns the id of the logged in user, if any.
func CurrentUserId(ctx *fiber.Ctx) (uuid.UUID, bool) {
	session := CurrentSession(ctx)
	if !session.IsAuthenticated() {
		return uuid.Nil, false
	}
	return *session.UserId, true
}

// AddFlash queues a message for the next rendered page.
func AddFlash(ctx *fiber.Ctx, category entity.FlashCategory, message string) {
	if session := CurrentSession(ctx); session != nil {
		session.AddFlash(category, message)
	}
}

// WantsJSON reports whether the client expects a JSON answer rather than a page.
func WantsJSON(ctx *fiber.Ctx) bool {
	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return true
	}
	if ctx.XHR() {
		return true
	}
	return ctx.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// RequireLogin rejects anonymous requests: pages are redirected to the
// login form, JSON callers get 401.
func RequireLogin(ctx *fiber.Ctx) error {
	if _, ok := CurrentUserId(ctx); ok {
		return ctx.Next()
	}

	if WantsJSON(ctx) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Login required"))
	}

	AddFlash(ctx, entity.FlashError, "Please log in to access this page.")
	return ctx.Redirect("/login", fiber.StatusSeeOther)
}
