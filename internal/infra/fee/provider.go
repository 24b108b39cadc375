package fee

import (
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/infra/backend"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	ProviderBackend = "backend"
	ProviderLocal   = "local"
)

// CalculatorParams holds dependencies for the DeliveryFeeCalculator, injected by Fx
type CalculatorParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Orders backend.OrderClient
}

// NewDeliveryFeeCalculator selects the backend or the local tier calculator
func NewDeliveryFeeCalculator(params CalculatorParams) (service.DeliveryFeeCalculator, error) {
	cfg := params.Config.DeliveryFee

	switch cfg.Provider {
	case "", ProviderBackend:
		return params.Orders, nil

	case ProviderLocal:
		tiers := TiersFromConfig(cfg.Tiers)
		if len(tiers) == 0 {
			return nil, errors.New("local delivery fee provider needs at least one tier")
		}
		params.Logger.Info("Using local delivery fee calculator",
			slog.Float64("origin_lat", cfg.Origin.Lat),
			slog.Float64("origin_lng", cfg.Origin.Lng),
			slog.Int("tiers", len(tiers)),
		)

		origin := entity.Coordinate{Lat: cfg.Origin.Lat, Lng: cfg.Origin.Lng}

		return NewLocalCalculator(origin, tiers, params.Logger), nil

	default:
		return nil, errors.Errorf("unknown delivery fee provider: %s", cfg.Provider)
	}
}

// Module provides the delivery fee FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewDeliveryFeeCalculator),
)
