package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	auth      service.AuthService
	repo      repository.SessionRepository
	inspector service.TokenInspector
	logger    *slog.Logger
	now       func() time.Time

	mu        sync.Mutex
	observers map[uint64]usecase.SessionObserver
	nextID    uint64
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Auth      service.AuthService
	Repo      repository.SessionRepository
	Inspector service.TokenInspector
	Logger    *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		auth:      params.Auth,
		repo:      params.Repo,
		inspector: params.Inspector,
		logger:    params.Logger,
		now:       time.Now,
		observers: make(map[uint64]usecase.SessionObserver),
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login authenticates against the backend and stores the token.
func (srv *sessionService) Login(ctx context.Context, creds service.Credentials) (*entity.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)

	result, err := srv.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	return srv.open(ctx, result, entity.SessionLoggedIn)
}

// Register creates the backend account and signs it in.
func (srv *sessionService) Register(ctx context.Context, reg service.Registration) (*entity.Session, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Phone = strings.TrimSpace(reg.Phone)

	result, err := srv.auth.Register(ctx, reg)
	if err != nil {
		return nil, err
	}

	return srv.open(ctx, result, entity.SessionRegistered)
}

func (srv *sessionService) open(ctx context.Context, result *service.AuthResult, eventType entity.SessionEventType) (*entity.Session, error) {
	now := srv.now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		Token:     result.Token,
		User:      result.User,
		CreatedAt: now.UTC(),
	}

	claims, err := srv.inspector.Inspect(result.Token)
	if err != nil {
		srv.log(ctx).WarnContext(ctx, "Could not read token expiry, session will not expire locally", slog.Any("error", err))
	} else {
		session.ExpiresAt = claims.ExpiresAt
	}

	if session.User == nil {
		user, err := srv.auth.Me(deliverycontext.WithAuthToken(ctx, result.Token))
		if err != nil {
			srv.log(ctx).WarnContext(ctx, "Could not load signed-in user", slog.Any("error", err))
		} else {
			session.User = user
		}
	}

	if err := srv.repo.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "save session")
	}

	attrs := []any{slog.String("session_id", session.ID), slog.String("event", string(eventType))}
	if session.User != nil {
		attrs = append(attrs, slog.String("user_id", session.User.ID))
	}
	srv.log(ctx).InfoContext(ctx, "Session opened", attrs...)

	srv.notify(entity.SessionEvent{Type: eventType, SessionID: session.ID, User: session.User})

	return session, nil
}

// Logout forgets the token. Unknown sessions are not an error.
func (srv *sessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domainerrors.ErrSessionNotFound
	}

	if err := srv.repo.Delete(ctx, sessionID); err != nil {
		return errors.Wrap(err, "delete session")
	}

	srv.log(ctx).InfoContext(ctx, "Session closed", slog.String("session_id", sessionID))
	srv.notify(entity.SessionEvent{Type: entity.SessionLoggedOut, SessionID: sessionID})

	return nil
}

// Current returns the live session, deleting it once the token has expired.
func (srv *sessionService) Current(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "" {
		return nil, domainerrors.ErrSessionNotFound
	}

	session, err := srv.repo.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "find session")
	}

	if session.Expired(srv.now()) {
		if err := srv.repo.Delete(ctx, sessionID); err != nil {
			srv.log(ctx).WarnContext(ctx, "Failed to delete expired session",
				slog.String("session_id", sessionID),
				slog.Any("error", err),
			)
		}
		srv.notify(entity.SessionEvent{Type: entity.SessionExpired, SessionID: sessionID, User: session.User})

		return nil, domainerrors.ErrSessionExpired
	}

	return session, nil
}

// Token returns the bearer token of a live session.
func (srv *sessionService) Token(ctx context.Context, sessionID string) (string, error) {
	session, err := srv.Current(ctx, sessionID)
	if err != nil {
		return "", err
	}

	return session.Token, nil
}

// Subscribe registers an observer.
func (srv *sessionService) Subscribe(fn usecase.SessionObserver) func() {
	srv.mu.Lock()
	id := srv.nextID
	srv.nextID++
	srv.observers[id] = fn
	srv.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			srv.mu.Lock()
			delete(srv.observers, id)
			srv.mu.Unlock()
		})
	}
}

// notify calls observers synchronously, outside the lock.
func (srv *sessionService) notify(event entity.SessionEvent) {
	srv.mu.Lock()
	observers := make([]usecase.SessionObserver, 0, len(srv.observers))
	for _, fn := range srv.observers {
		observers = append(observers, fn)
	}
	srv.mu.Unlock()

	for _, fn := range observers {
		fn(event)
	}
}
