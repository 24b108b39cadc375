package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	err := ErrFileTooLarge.WithDetails("limit is 5.0 MB")

	assert.True(t, errors.Is(err, ErrFileTooLarge))
	assert.False(t, errors.Is(err, ErrUnsupportedFileType))
	assert.Equal(t, "limit is 5.0 MB", err.Details())
}

func TestBackendError_HTTPCode(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   int
	}{
		{name: "client error passes through", status: http.StatusConflict, want: http.StatusConflict},
		{name: "server error becomes bad gateway", status: http.StatusInternalServerError, want: http.StatusBadGateway},
		{name: "unexpected status becomes bad gateway", status: http.StatusMultipleChoices, want: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBackendError(tt.status, "boom").HTTPCode())
		})
	}
}

func TestBackendError_EmptyMessageUsesStatusText(t *testing.T) {
	err := NewBackendError(http.StatusNotFound, "")

	assert.Equal(t, "Not Found", err.Message())
	assert.True(t, IsNotFound(errors.Wrap(err, "get cart")))
	assert.False(t, IsNotFound(ErrNotFound))
}
