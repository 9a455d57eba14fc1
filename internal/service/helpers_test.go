package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"notes-web/internal/dto"
	"notes-web/internal/entity"
	"notes-web/internal/pkg/logger"
	"notes-web/internal/repository/memory"
	"notes-web/internal/repository/unitofwork"
	"notes-web/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// recordingPublisher captures activity payloads instead of sending them.
type recordingPublisher struct {
	mu       sync.Mutex
	messages []dto.ActivityMessage
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	var msg dto.ActivityMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		res = append(res, m.Type)
	}
	return res
}

var errBusDown = errors.New("bus down")

type fixture struct {
	db        *gorm.DB
	sessions  ISessionService
	auth      IAuthService
	notes     INoteService
	publisher *recordingPublisher
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewGormDB(database.GormConfig{
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	publisher := &recordingPublisher{}
	log := logger.NewNopLogger()
	sessions := NewSessionService(memory.NewSessionRepository(time.Hour))

	return &fixture{
		db:        db,
		sessions:  sessions,
		auth:      NewAuthService(uowFactory, sessions, publisher, log, bcrypt.MinCost),
		notes:     NewNoteService(uowFactory, publisher, log),
		publisher: publisher,
	}
}

func (f *fixture) anonymousSession(t *testing.T) *entity.Session {
	t.Helper()
	session, err := f.sessions.Resolve(context.Background(), "")
	require.NoError(t, err)
	return session
}

// signup registers a user with a valid password and returns the
// authenticated session.
func (f *fixture) signup(t *testing.T, name, email string) (*entity.Session, *dto.UserResponse) {
	t.Helper()
	session := f.anonymousSession(t)
	user, err := f.auth.Signup(context.Background(), session, &dto.SignupRequest{
		Email:           email,
		FullName:        name,
		Password:        "pw123456",
		ConfirmPassword: "pw123456",
	})
	require.NoError(t, err)
	return session, user
}
