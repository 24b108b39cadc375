package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves the caller's backend token. A bearer header wins;
// otherwise the X-Session-Id header is looked up in the session store.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, logger: logger}
}

// Resolve attaches the token to the request context when one is found.
// Anonymous callers, and callers whose session has ended, pass through
// without a token.
func (m *AuthMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := req.Context()

		if token, ok := bearerToken(req.Header.Get(echo.HeaderAuthorization)); ok {
			ctx = deliverycontext.WithAuthToken(ctx, token)
		}

		if sessionID := strings.TrimSpace(req.Header.Get(deliverycontext.HeaderXSessionID)); sessionID != "" {
			ctx = deliverycontext.WithSessionID(ctx, sessionID)

			if deliverycontext.GetAuthToken(ctx) == "" {
				token, err := m.sessions.Token(ctx, sessionID)
				switch {
				case err == nil:
					ctx = deliverycontext.WithAuthToken(ctx, token)
				case errors.Is(err, domainerrors.ErrSessionNotFound), errors.Is(err, domainerrors.ErrSessionExpired):
					deliverycontext.GetLoggerOrDefault(ctx, m.logger).DebugContext(ctx, "Ignoring ended session",
						slog.String("session_id", sessionID),
					)
				default:
					return err
				}
			}
		}

		c.SetRequest(req.WithContext(ctx))

		return next(c)
	}
}

// RequireAuth rejects requests that Resolve left without a token.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetAuthToken(c.Request().Context()) == "" {
			return domainerrors.ErrSessionNotFound
		}

		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}
