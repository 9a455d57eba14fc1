package contract

import (
	"context"

	"notes-web/internal/entity"
)

// SessionRepository stores sessions keyed by their opaque token.
// Get returns (nil, nil) for unknown or expired tokens.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
