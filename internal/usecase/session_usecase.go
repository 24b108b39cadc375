package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// SessionObserver is notified of session transitions
type SessionObserver func(event entity.SessionEvent)

// SessionUsecase is the explicit session store. Login and logout are the
// only writers; everything else reads through Current or Token.
type SessionUsecase interface {
	Login(ctx context.Context, creds service.Credentials) (*entity.Session, error)
	Register(ctx context.Context, reg service.Registration) (*entity.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Current(ctx context.Context, sessionID string) (*entity.Session, error)
	Token(ctx context.Context, sessionID string) (string, error)

	// Subscribe registers fn; the returned func removes it
	Subscribe(fn SessionObserver) (unsubscribe func())
}
