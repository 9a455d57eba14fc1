package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"notes-web/internal/entity"
	"notes-web/internal/repository/contract"

	"github.com/google/uuid"
)

type ISessionService interface {
	// Resolve returns the stored session for id, or a fresh anonymous one.
	Resolve(ctx context.Context, id string) (*entity.Session, error)
	// Persist stores sessions worth keeping and drops empty anonymous ones.
	// It reports whether the browser should keep a cookie for the session.
	Persist(ctx context.Context, session *entity.Session) (bool, error)
	// Authenticate binds the session to userId under a new token.
	Authenticate(ctx context.Context, session *entity.Session, userId uuid.UUID) error
	// End forgets the user and moves the session to a new anonymous token.
	End(ctx context.Context, session *entity.Session) error
}

type sessionService struct {
	repo contract.SessionRepository
}

func NewSessionService(repo contract.SessionRepository) ISessionService {
	return &sessionService{repo: repo}
}

func generateSessionId() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func newSession() (*entity.Session, error) {
	id, err := generateSessionId()
	if err != nil {
		return nil, err
	}
	return &entity.Session{
		Id:        id,
		CreatedAt: time.Now(),
		IsNew:     true,
	}, nil
}

func (s *sessionService) Resolve(ctx context.Context, id string) (*entity.Session, error) {
	if id != "" {
		session, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if session != nil {
			session.IsNew = false
			return session, nil
		}
	}
	return newSession()
}

func (s *sessionService) Persist(ctx context.Context, session *entity.Session) (bool, error) {
	if session.IsAuthenticated() || len(session.Flashes) > 0 {
		if err := s.repo.Save(ctx, session); err != nil {
			return false, err
		}
		session.IsNew = false
		return true, nil
	}

	if !session.IsNew {
		if err := s.repo.Delete(ctx, session.Id); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (s *sessionService) Authenticate(ctx context.Context, session *entity.Session, userId uuid.UUID) error {
	if err := s.rotate(ctx, session); err != nil {
		return err
	}
	session.UserId = &userId
	return nil
}

func (s *sessionService) End(ctx context.Context, session *entity.Session) error {
	if err := s.rotate(ctx, session); err != nil {
		return err
	}
	session.UserId = nil
	return nil
}

// rotate issues a new token so a token seen before login is useless after it.
func (s *sessionService) rotate(ctx context.Context, session *entity.Session) error {
	if !session.IsNew {
		if err := s.repo.Delete(ctx, session.Id); err != nil {
			return err
		}
	}

	id, err := generateSessionId()
	if err != nil {
		return err
	}
	session.Id = id
	session.CreatedAt = time.Now()
	session.IsNew = true
	return nil
}
