package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidRequestID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"empty", "", false},
		{"uuid", uuid.NewString(), true},
		{"with space", "abc def", false},
		{"control character", "abc\ndef", false},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
		{"at limit", strings.Repeat("a", maxRequestIDLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validRequestID(tt.id))
		})
	}
}

func TestRequestIDMiddleware_Process(t *testing.T) {
	m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e := echo.New()

	run := func(header string) (string, string) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(deliverycontext.HeaderXRequestID, header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var fromCtx string
		err := m.Process(func(c echo.Context) error {
			fromCtx = deliverycontext.GetRequestIDFromContext(c.Request().Context())
			assert.NotNil(t, deliverycontext.GetLogger(c.Request().Context()))

			return nil
		})(c)
		require.NoError(t, err)

		return rec.Header().Get(deliverycontext.HeaderXRequestID), fromCtx
	}

	got, fromCtx := run("client-id-1")
	assert.Equal(t, "client-id-1", got)
	assert.Equal(t, "client-id-1", fromCtx)

	got, fromCtx = run("bad id")
	assert.NotEqual(t, "bad id", got)
	assert.NoError(t, uuid.Validate(got))
	assert.Equal(t, got, fromCtx)
}
