package memory

import (
	"context"
	"time"

	"notes-web/internal/entity"
	"notes-web/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions for ttl and purges expired ones
// every ttl/6 (at least once a minute).
func NewSessionRepository(ttl time.Duration) contract.SessionRepository {
	cleanup := ttl / 6
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

func (r *SessionRepository) Save(_ context.Context, session *entity.Session) error {
	r.cache.Set(session.Id, cloneSession(session), cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (*entity.Session, error) {
	if x, found := r.cache.Get(id); found {
		return cloneSession(x.(*entity.Session)), nil
	}
	return nil, nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}

// Callers mutate the session they hold; the cache keeps its own copy.
func cloneSession(s *entity.Session) *entity.Session {
	c := *s
	if s.UserId != nil {
		id := *s.UserId
		c.UserId = &id
	}
	c.Flashes = append([]entity.Flash(nil), s.Flashes...)
	return &c
}
