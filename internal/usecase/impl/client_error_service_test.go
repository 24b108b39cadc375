package impl

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestClientErrorService_Report(t *testing.T) {
	tests := []struct {
		name   string
		report usecase.ClientErrorReport
		kept   bool
	}{
		{name: "app error", report: usecase.ClientErrorReport{Message: "Cannot read properties of undefined", Source: "https://shop.example.com/app.js"}, kept: true},
		{name: "chrome extension source", report: usecase.ClientErrorReport{Message: "boom", Source: "chrome-extension://abc/content.js"}},
		{name: "firefox extension stack", report: usecase.ClientErrorReport{Message: "boom", Stack: "at x (moz-extension://abc/inject.js:1:2)"}},
		{name: "safari extension", report: usecase.ClientErrorReport{Message: "boom", Source: "safari-web-extension://abc/script.js"}},
		{name: "extension runtime message", report: usecase.ClientErrorReport{Message: "Extension context invalidated."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			srv := NewClientErrorService(slog.New(slog.NewJSONHandler(&buf, nil)))

			assert.Equal(t, tt.kept, srv.Report(context.Background(), &tt.report))
			assert.Equal(t, tt.kept, strings.Contains(buf.String(), `"level":"WARN"`))
		})
	}
}

func TestClientErrorService_TruncatesStack(t *testing.T) {
	var buf bytes.Buffer
	srv := NewClientErrorService(slog.New(slog.NewJSONHandler(&buf, nil)))

	kept := srv.Report(context.Background(), &usecase.ClientErrorReport{
		Message: "boom",
		Stack:   strings.Repeat("a", 10000),
	})

	assert.True(t, kept)
	assert.Less(t, buf.Len(), 6000)
	assert.False(t, srv.Report(context.Background(), nil))
}
