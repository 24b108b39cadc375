package service

import "time"

// TokenClaims are the fields the storefront reads from a backend token
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time // zero when the token carries no expiry
}

// TokenInspector reads backend bearer tokens. The storefront does not hold
// the backend signing key, so tokens are inspected, not verified; the
// backend still verifies every request.
type TokenInspector interface {
	Inspect(token string) (*TokenClaims, error)
}
