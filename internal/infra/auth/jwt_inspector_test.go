package auth

import (
	"testing"
	"time"

	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)

	return token
}

func TestJWTInspector_ReadsExpiryAndSubject(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{
		"id":  "user-1",
		"exp": exp.Unix(),
	})

	claims, err := NewJWTInspector().Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, exp.Equal(claims.ExpiresAt))
}

func TestJWTInspector_PrefersSub(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "from-sub", "id": "from-id"})

	claims, err := NewJWTInspector().Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "from-sub", claims.Subject)
	assert.True(t, claims.ExpiresAt.IsZero())
}

func TestJWTInspector_ExpiredTokenStillInspected(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Hour).Unix()})

	claims, err := NewJWTInspector().Inspect(token)
	require.NoError(t, err)
	assert.True(t, ExpiresWithin(claims, time.Now(), 0))
}

func TestJWTInspector_InvalidToken(t *testing.T) {
	claims, err := NewJWTInspector().Inspect("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestExpiresWithin(t *testing.T) {
	now := time.Now()

	assert.False(t, ExpiresWithin(nil, now, time.Minute))
	assert.True(t, ExpiresWithin(&service.TokenClaims{ExpiresAt: now.Add(30 * time.Second)}, now, time.Minute))
	assert.False(t, ExpiresWithin(&service.TokenClaims{ExpiresAt: now.Add(2 * time.Minute)}, now, time.Minute))
}
