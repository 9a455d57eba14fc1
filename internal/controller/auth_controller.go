package controller

import (
	"notes-web/internal/dto"
	"notes-web/internal/entity"
	"notes-web/internal/pkg/apperror"
	"notes-web/internal/pkg/serverutils"
	"notes-web/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	ShowLogin(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	ShowSignup(ctx *fiber.Ctx) error
	Signup(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Get("/login", c.ShowLogin)
	r.Post("/login", c.Login)
	for _, path := range []string{"/signup", "/sign-up"} {
		r.Get(path, c.ShowSignup)
		r.Post(path, c.Signup)
	}
	r.Get("/logout", c.Logout)
}

func (c *authController) ShowLogin(ctx *fiber.Ctx) error {
	if _, ok := serverutils.CurrentUserId(ctx); ok {
		return redirect(ctx, "/")
	}
	return renderPage(ctx, fiber.StatusOK, "login", "Login", nil, nil)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	session := serverutils.CurrentSession(ctx)
	if _, err := c.service.Login(ctx.UserContext(), session, &req); err != nil {
		if !apperror.IsClientError(err) {
			return err
		}
		session.AddFlash(entity.FlashError, userMessage(err))
		return renderPage(ctx, serverutils.StatusFor(err), "login", "Login", nil, fiber.Map{
			"Email": req.Email,
		})
	}

	session.AddFlash(entity.FlashSuccess, "Logged in successfully!")
	return redirect(ctx, "/")
}

func (c *authController) ShowSignup(ctx *fiber.Ctx) error {
	if _, ok := serverutils.CurrentUserId(ctx); ok {
		return redirect(ctx, "/")
	}
	return renderPage(ctx, fiber.StatusOK, "signup", "Sign Up", nil, nil)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	session := serverutils.CurrentSession(ctx)
	if _, err := c.service.Signup(ctx.UserContext(), session, &req); err != nil {
		if !apperror.IsClientError(err) {
			return err
		}
		session.AddFlash(entity.FlashError, userMessage(err))
		return renderPage(ctx, serverutils.StatusFor(err), "signup", "Sign Up", nil, fiber.Map{
			"Email": req.Email,
			"Name":  req.FullName,
		})
	}

	session.AddFlash(entity.FlashSuccess, "Account created successfully!")
	return redirect(ctx, "/?new_user=true")
}

// Logout is idempotent: an anonymous visitor is simply sent to the login page.
func (c *authController) Logout(ctx *fiber.Ctx) error {
	session := serverutils.CurrentSession(ctx)
	if session.IsAuthenticated() {
		if err := c.service.Logout(ctx.UserContext(), session); err != nil {
			return err
		}
		session.AddFlash(entity.FlashSuccess, "Logged out successfully.")
	}
	return redirect(ctx, "/login")
}
