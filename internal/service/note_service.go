package service

import (
	"context"
	"fmt"
	"time"

	"notes-web/internal/dto"
	"notes-web/internal/entity"
	"notes-web/internal/pkg/apperror"
	"notes-web/internal/pkg/logger"
	"notes-web/internal/repository/specification"
	"notes-web/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	msgNoteNotFound  = "Note not found."
	msgNoteForbidden = "You do not have access to this note."
)

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	// Apply dispatches a create or update request.
	Apply(ctx context.Context, userId uuid.UUID, cmd dto.NoteCommand) (*dto.NoteResponse, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	activity   activityRecorder
	log        logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		activity:   activityRecorder{publisher: publisher, log: log},
		log:        log,
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.NewestFirst(),
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNoteResponse(note))
	}
	return res, nil
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	content, err := normalizeNoteContent(req.Content)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		Content:   content,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	c.activity.record(ctx, dto.ActivityNoteCreated, userId, &note.Id)

	return toNoteResponse(&note), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	content, err := normalizeNoteContent(req.Content)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note.Content = content
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	c.activity.record(ctx, dto.ActivityNoteUpdated, userId, &note.Id)

	return toNoteResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if _, err := c.findOwned(ctx, uow, userId, id); err != nil {
		return err
	}

	deleted, err := uow.NoteRepository().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if !deleted {
		// Removed by a concurrent request between lookup and delete.
		return apperror.NotFound(msgNoteNotFound)
	}

	c.activity.record(ctx, dto.ActivityNoteDeleted, userId, &id)

	return nil
}

func (c *noteService) Apply(ctx context.Context, userId uuid.UUID, cmd dto.NoteCommand) (*dto.NoteResponse, error) {
	switch req := cmd.(type) {
	case dto.CreateNoteRequest:
		return c.Create(ctx, userId, &req)
	case *dto.CreateNoteRequest:
		return c.Create(ctx, userId, req)
	case dto.UpdateNoteRequest:
		return c.Update(ctx, userId, &req)
	case *dto.UpdateNoteRequest:
		return c.Update(ctx, userId, req)
	default:
		return nil, fmt.Errorf("unsupported note command %T", cmd)
	}
}

// findOwned loads a note and checks that userId owns it.
func (c *noteService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}
	if note == nil {
		return nil, apperror.NotFound(msgNoteNotFound)
	}
	if !note.OwnedBy(userId) {
		c.log.Warn("note", "Rejected access to foreign note", map[string]interface{}{
			"user_id": userId.String(),
			"note_id": id.String(),
		})
		return nil, apperror.Forbidden(msgNoteForbidden)
	}
	return note, nil
}
