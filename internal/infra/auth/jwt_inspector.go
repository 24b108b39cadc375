// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"storefront/internal/domain/service"
)

// subjectClaims lists where the backend may put the user id, in order.
var subjectClaims = []string{"sub", "id", "userId", "_id"}

// jwtInspector reads JWTs issued by the marketplace backend. It has no
// signing secret; it only looks at claims to learn expiry and subject.
type jwtInspector struct {
	parser *jwt.Parser
}

// NewJWTInspector is the constructor for jwtInspector.
func NewJWTInspector() service.TokenInspector {
	return &jwtInspector{parser: jwt.NewParser()}
}

// Inspect decodes the token claims without verifying the signature.
func (s *jwtInspector) Inspect(tokenString string) (*service.TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}

	result := &service.TokenClaims{}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, errors.Wrap(err, "invalid exp claim")
	}
	if exp != nil {
		result.ExpiresAt = exp.Time.UTC()
	}

	for _, key := range subjectClaims {
		if v, ok := claims[key].(string); ok && v != "" {
			result.Subject = v

			break
		}
	}

	return result, nil
}

// ExpiresWithin reports whether claims expire before now+d. Tokens without
// an expiry never do.
func ExpiresWithin(claims *service.TokenClaims, now time.Time, d time.Duration) bool {
	if claims == nil || claims.ExpiresAt.IsZero() {
		return false
	}

	return !claims.ExpiresAt.After(now.Add(d))
}
