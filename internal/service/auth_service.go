package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notes-web/internal/dto"
	"notes-web/internal/entity"
	"notes-web/internal/pkg/apperror"
	"notes-web/internal/pkg/logger"
	"notes-web/internal/repository/specification"
	"notes-web/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgEmailTaken         = "Email already exists. Try logging in instead."
	msgInvalidCredentials = "Invalid email or password."
)

type IAuthService interface {
	Signup(ctx context.Context, session *entity.Session, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, session *entity.Session, req *dto.LoginRequest) (*dto.UserResponse, error)
	Logout(ctx context.Context, session *entity.Session) error
	// CurrentUser returns nil when the session is anonymous or its user is gone.
	CurrentUser(ctx context.Context, session *entity.Session) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   ISessionService
	activity   activityRecorder
	log        logger.ILogger
	hashCost   int
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions ISessionService,
	publisher IPublisherService,
	log logger.ILogger,
	hashCost int,
) IAuthService {
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	return &authService{
		uowFactory: uowFactory,
		sessions:   sessions,
		activity:   activityRecorder{publisher: publisher, log: log},
		log:        log,
		hashCost:   hashCost,
	}
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:       user.Id,
		Email:    user.Email,
		FullName: user.FullName,
	}
}

func (s *authService) Signup(ctx context.Context, session *entity.Session, req *dto.SignupRequest) (*dto.UserResponse, error) {
	if err := validateSignup(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        normalizeEmail(req.Email),
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("look up email: %w", err)
	}
	if existing != nil {
		return nil, apperror.Validation(msgEmailTaken)
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same address.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation(msgEmailTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit signup: %w", err)
	}

	if err := s.sessions.Authenticate(ctx, session, user.Id); err != nil {
		return nil, err
	}

	s.log.Info("auth", "User signed up", map[string]interface{}{"user_id": user.Id.String()})
	s.activity.record(ctx, dto.ActivityUserSignedUp, user.Id, nil)

	return toUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, session *entity.Session, req *dto.LoginRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperror.Validation("Email and password are required.")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	// Unknown account and wrong password must be indistinguishable.
	if user == nil {
		return nil, apperror.InvalidCredentials(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.InvalidCredentials(msgInvalidCredentials)
	}

	if err := s.sessions.Authenticate(ctx, session, user.Id); err != nil {
		return nil, err
	}

	s.activity.record(ctx, dto.ActivityUserLoggedIn, user.Id, nil)

	return toUserResponse(user), nil
}

func (s *authService) Logout(ctx context.Context, session *entity.Session) error {
	if !session.IsAuthenticated() {
		return nil
	}

	userId := *session.UserId
	if err := s.sessions.End(ctx, session); err != nil {
		return err
	}

	s.activity.record(ctx, dto.ActivityUserLoggedOut, userId, nil)
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, session *entity.Session) (*dto.UserResponse, error) {
	if !session.IsAuthenticated() {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *session.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}
