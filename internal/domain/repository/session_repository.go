package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned when no session is stored under the id
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists storefront sessions (and their backend tokens)
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	Find(ctx context.Context, sessionID string) (*entity.Session, error)
	Delete(ctx context.Context, sessionID string) error
	Close() error
}
