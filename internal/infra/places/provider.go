package places

import (
	"log/slog"
	"net/http"

	"storefront/config"
	"storefront/internal/domain/service"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"
)

// ProviderParams holds dependencies for PlacesProvider, injected by Fx
type ProviderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewPlacesProvider creates a PlacesProvider based on configuration
func NewPlacesProvider(params ProviderParams) (service.PlacesProvider, error) {
	cfg := params.Config.Maps
	logger := params.Logger

	// Without a key, checkout still works with manual entry
	if cfg == nil || cfg.APIKey == "" {
		return NewDisabled(logger), nil
	}

	logger.Info("Using Google Maps places provider",
		slog.String("base_url", cfg.BaseURL),
		slog.String("region", cfg.Region),
	)

	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return NewGooglePlaces(cfg, httpClient, logger)
}

// Module provides the places FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewPlacesProvider),
)
