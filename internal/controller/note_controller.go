package controller

import (
	"notes-web/internal/dto"
	"notes-web/internal/entity"
	"notes-web/internal/pkg/apperror"
	"notes-web/internal/pkg/serverutils"
	"notes-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Home(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
	authService service.IAuthService
}

func NewNoteController(noteService service.INoteService, authService service.IAuthService) INoteController {
	return &noteController{
		noteService: noteService,
		authService: authService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	r.Get("/", serverutils.RequireLogin, c.Home)
	r.Post("/", serverutils.RequireLogin, c.Create)
	r.Post("/edit-note", serverutils.RequireLogin, c.Update)
	r.Post("/delete-note", serverutils.RequireLogin, c.Delete)
}

func (c *noteController) Home(ctx *fiber.Ctx) error {
	session := serverutils.CurrentSession(ctx)

	user, err := c.authService.CurrentUser(ctx.UserContext(), session)
	if err != nil {
		return err
	}
	if user == nil {
		// The session outlived its account.
		if err := c.authService.Logout(ctx.UserContext(), session); err != nil {
			return err
		}
		return redirect(ctx, "/login")
	}

	notes, err := c.noteService.List(ctx.UserContext(), user.Id)
	if err != nil {
		return err
	}

	return renderPage(ctx, fiber.StatusOK, "home", "Home", user, fiber.Map{
		"Notes":   notes,
		"NewUser": ctx.QueryBool("new_user"),
	})
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, _ := serverutils.CurrentUserId(ctx)

	var form dto.CreateNoteForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}

	return c.apply(ctx, userId, dto.CreateNoteRequest{Content: form.Note}, "Note added!")
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, _ := serverutils.CurrentUserId(ctx)

	var form dto.EditNoteForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(form); err != nil {
		serverutils.AddFlash(ctx, entity.FlashError, msgNoteNotFound)
		return redirect(ctx, "/")
	}

	req := dto.UpdateNoteRequest{
		Id:      uuid.MustParse(form.NoteId),
		Content: form.Note,
	}
	return c.apply(ctx, userId, req, "Note updated successfully!")
}

func (c *noteController) apply(ctx *fiber.Ctx, userId uuid.UUID, cmd dto.NoteCommand, success string) error {
	if _, err := c.noteService.Apply(ctx.UserContext(), userId, cmd); err != nil {
		if !apperror.IsClientError(err) {
			return err
		}
		serverutils.AddFlash(ctx, entity.FlashError, userMessage(err))
		return redirect(ctx, "/")
	}

	serverutils.AddFlash(ctx, entity.FlashSuccess, success)
	return redirect(ctx, "/")
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, _ := serverutils.CurrentUserId(ctx)

	var req dto.DeleteNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Malformed request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	if err := c.noteService.Delete(ctx.UserContext(), userId, uuid.MustParse(req.NoteId)); err != nil {
		if !apperror.IsClientError(err) {
			return err
		}
		code := serverutils.StatusFor(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, userMessage(err)))
	}

	return ctx.JSON(fiber.Map{})
}
