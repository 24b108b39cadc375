package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"
)

var extensionSchemes = []string{
	"chrome-extension://",
	"moz-extension://",
	"safari-extension://",
	"safari-web-extension://",
}

var extensionMessages = []string{
	"extension context invalidated",
	"chrome.runtime",
	"browser.runtime",
}

const maxStackLength = 4096

// clientErrorService implements the ClientErrorUsecase interface.
type clientErrorService struct {
	logger *slog.Logger
}

// NewClientErrorService is the constructor for clientErrorService.
func NewClientErrorService(logger *slog.Logger) usecase.ClientErrorUsecase {
	return &clientErrorService{logger: logger}
}

// Report logs a frontend error unless it comes from a browser extension.
func (srv *clientErrorService) Report(ctx context.Context, report *usecase.ClientErrorReport) bool {
	if report == nil || isExtensionNoise(report) {
		return false
	}

	stack := report.Stack
	if len(stack) > maxStackLength {
		stack = stack[:maxStackLength]
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).WarnContext(ctx, "Client error reported",
		slog.String("message", report.Message),
		slog.String("source", report.Source),
		slog.String("url", report.URL),
		slog.Int("line", report.Line),
		slog.Int("column", report.Column),
		slog.String("stack", stack),
		slog.String("user_agent", report.UserAgent),
	)

	return true
}

func isExtensionNoise(report *usecase.ClientErrorReport) bool {
	for _, scheme := range extensionSchemes {
		if strings.Contains(report.Source, scheme) || strings.Contains(report.Stack, scheme) {
			return true
		}
	}

	message := strings.ToLower(report.Message)
	for _, m := range extensionMessages {
		if strings.Contains(message, m) {
			return true
		}
	}

	return false
}
