package impl

import (
	"context"
	"testing"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mocksrepository "storefront/internal/mocks/repository"
	mocksservice "storefront/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	srv       *sessionService
	auth      *mocksservice.MockAuthService
	repo      *mocksrepository.MockSessionRepository
	inspector *mocksservice.MockTokenInspector
	now       time.Time
	events    []entity.SessionEvent
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		auth:      mocksservice.NewMockAuthService(t),
		repo:      mocksrepository.NewMockSessionRepository(t),
		inspector: mocksservice.NewMockTokenInspector(t),
		now:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.srv = NewSessionService(SessionServiceParams{
		Auth:      f.auth,
		Repo:      f.repo,
		Inspector: f.inspector,
		Logger:    discardLogger(),
	}).(*sessionService)
	f.srv.now = func() time.Time { return f.now }
	f.srv.Subscribe(func(event entity.SessionEvent) { f.events = append(f.events, event) })

	return f
}

func TestSessionService_Login(t *testing.T) {
	f := newSessionFixture(t)
	creds := service.Credentials{Email: "a@example.com", Password: "secret"}
	expiry := f.now.Add(time.Hour)

	f.auth.On("Login", mock.Anything, creds).
		Return(&service.AuthResult{Token: "tok", User: &entity.User{ID: "u1"}}, nil).Once()
	f.inspector.On("Inspect", "tok").Return(&service.TokenClaims{Subject: "u1", ExpiresAt: expiry}, nil).Once()
	f.repo.On("Save", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
		return s.Token == "tok" && s.ExpiresAt.Equal(expiry) && s.ID != ""
	})).Return(nil).Once()

	session, err := f.srv.Login(context.Background(), service.Credentials{Email: " a@example.com ", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "u1", session.User.ID)
	require.Len(t, f.events, 1)
	assert.Equal(t, entity.SessionLoggedIn, f.events[0].Type)
	assert.Equal(t, session.ID, f.events[0].SessionID)
}

func TestSessionService_LoginFailureNotifiesNobody(t *testing.T) {
	f := newSessionFixture(t)
	backendErr := domainerrors.NewBackendError(401, "Invalid credentials")
	f.auth.On("Login", mock.Anything, mock.Anything).Return(nil, backendErr).Once()

	_, err := f.srv.Login(context.Background(), service.Credentials{Email: "a@example.com"})

	assert.ErrorIs(t, err, backendErr)
	assert.Empty(t, f.events)
}

func TestSessionService_RegisterLoadsMissingUser(t *testing.T) {
	f := newSessionFixture(t)
	f.auth.On("Register", mock.Anything, mock.Anything).Return(&service.AuthResult{Token: "tok"}, nil).Once()
	f.inspector.On("Inspect", "tok").Return(nil, errors.New("failed to parse token structure")).Once()
	f.auth.On("Me", mock.MatchedBy(func(ctx context.Context) bool {
		return deliverycontext.GetAuthToken(ctx) == "tok"
	})).Return(&entity.User{ID: "u2", Name: "Sara"}, nil).Once()
	f.repo.On("Save", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
		return s.ExpiresAt.IsZero()
	})).Return(nil).Once()

	session, err := f.srv.Register(context.Background(), service.Registration{Name: "Sara", Email: "s@example.com", Password: "x"})
	require.NoError(t, err)

	assert.Equal(t, "u2", session.User.ID)
	require.Len(t, f.events, 1)
	assert.Equal(t, entity.SessionRegistered, f.events[0].Type)
}

func TestSessionService_Current(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		f := newSessionFixture(t)
		f.repo.On("Find", mock.Anything, "s1").
			Return(&entity.Session{ID: "s1", Token: "tok", ExpiresAt: f.now.Add(time.Minute)}, nil).Once()

		token, err := f.srv.Token(context.Background(), "s1")
		require.NoError(t, err)
		assert.Equal(t, "tok", token)
	})

	t.Run("expired", func(t *testing.T) {
		f := newSessionFixture(t)
		f.repo.On("Find", mock.Anything, "s1").
			Return(&entity.Session{ID: "s1", Token: "tok", ExpiresAt: f.now.Add(-time.Second)}, nil).Once()
		f.repo.On("Delete", mock.Anything, "s1").Return(nil).Once()

		_, err := f.srv.Current(context.Background(), "s1")
		assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
		require.Len(t, f.events, 1)
		assert.Equal(t, entity.SessionExpired, f.events[0].Type)
	})

	t.Run("unknown", func(t *testing.T) {
		f := newSessionFixture(t)
		f.repo.On("Find", mock.Anything, "nope").Return(nil, repository.ErrSessionNotFound).Once()

		_, err := f.srv.Current(context.Background(), "nope")
		assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)

		_, err = f.srv.Current(context.Background(), "")
		assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
	})
}

func TestSessionService_Logout(t *testing.T) {
	f := newSessionFixture(t)
	f.repo.On("Delete", mock.Anything, "s1").Return(nil).Once()

	require.NoError(t, f.srv.Logout(context.Background(), "s1"))

	require.Len(t, f.events, 1)
	assert.Equal(t, entity.SessionEvent{Type: entity.SessionLoggedOut, SessionID: "s1"}, f.events[0])
}

func TestSessionService_Unsubscribe(t *testing.T) {
	f := newSessionFixture(t)
	f.repo.On("Delete", mock.Anything, mock.Anything).Return(nil).Twice()

	var calls int
	unsubscribe := f.srv.Subscribe(func(entity.SessionEvent) { calls++ })

	require.NoError(t, f.srv.Logout(context.Background(), "s1"))
	unsubscribe()
	unsubscribe()
	require.NoError(t, f.srv.Logout(context.Background(), "s2"))

	assert.Equal(t, 1, calls)
	assert.Len(t, f.events, 2)
}
