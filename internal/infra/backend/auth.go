package backend

import (
	"context"
	"net/http"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

type authClient struct {
	c *Client
}

// NewAuthClient creates an AuthService backed by the REST API
func NewAuthClient(c *Client) service.AuthService {
	return &authClient{c: c}
}

// Login sends POST /api/auth/login
func (ac *authClient) Login(ctx context.Context, creds service.Credentials) (*service.AuthResult, error) {
	return ac.authenticate(ctx, "login", creds)
}

// Register sends POST /api/auth/register
func (ac *authClient) Register(ctx context.Context, reg service.Registration) (*service.AuthResult, error) {
	return ac.authenticate(ctx, "register", reg)
}

// Me fetches GET /api/auth/me
func (ac *authClient) Me(ctx context.Context) (*entity.User, error) {
	raw, err := ac.c.doJSON(ctx, http.MethodGet, ac.c.endpoint(nil, "api", "auth", "me"), nil)
	if err != nil {
		return nil, err
	}

	var user entity.User
	if err := decode(raw, &user, "user", "data"); err != nil {
		return nil, err
	}

	return &user, nil
}

func (ac *authClient) authenticate(ctx context.Context, action string, body any) (*service.AuthResult, error) {
	raw, err := ac.c.doJSON(ctx, http.MethodPost, ac.c.endpoint(nil, "api", "auth", action), body)
	if err != nil {
		return nil, err
	}

	var result service.AuthResult
	if err := decode(raw, &result, "data"); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, errors.Wrapf(ErrMalformedResponse, "%s: token missing", action)
	}

	return &result, nil
}
