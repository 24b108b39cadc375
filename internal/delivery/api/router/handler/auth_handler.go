package handler

import (
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// AuthHandler exposes login, registration and the session store
type AuthHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the request body for signing up
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
}

// SessionResponse is returned by login, register and session lookup. The
// client sends SessionID back in the X-Session-Id header.
type SessionResponse struct {
	SessionID string       `json:"sessionId"`
	User      *entity.User `json:"user,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
}

func sessionResponse(s *entity.Session) SessionResponse {
	resp := SessionResponse{SessionID: s.ID, User: s.User}
	if !s.ExpiresAt.IsZero() {
		expiresAt := s.ExpiresAt
		resp.ExpiresAt = &expiresAt
	}

	return resp
}

// Login handles the login request
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if ok, err := bindAndValidate(c, &req, "Invalid login input"); !ok {
		return err
	}

	session, err := h.sessionUC.Login(c.Request().Context(), service.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessionResponse(session))
}

// Register handles the sign-up request
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if ok, err := bindAndValidate(c, &req, "Invalid registration input"); !ok {
		return err
	}

	session, err := h.sessionUC.Register(c.Request().Context(), service.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sessionResponse(session))
}

// Logout forgets the session named by X-Session-Id
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := deliverycontext.GetSessionID(ctx)
	if sessionID == "" {
		return domainerrors.ErrSessionNotFound
	}

	if err := h.sessionUC.Logout(ctx, sessionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Session returns the live session named by X-Session-Id
func (h *AuthHandler) Session(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := h.sessionUC.Current(ctx, deliverycontext.GetSessionID(ctx))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessionResponse(session))
}
