package fee

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
)

// ErrNoCoordinates is returned when the address cannot be placed on the map
var ErrNoCoordinates = errors.New("address has no coordinates")

// localCalculator prices delivery by great-circle distance from the store,
// for running without the backend fee endpoint
type localCalculator struct {
	origin orb.Point
	tiers  []entity.FeeTier
	logger *slog.Logger
}

// NewLocalCalculator creates a DeliveryFeeCalculator with an origin and distance tiers
func NewLocalCalculator(origin entity.Coordinate, tiers []entity.FeeTier, logger *slog.Logger) service.DeliveryFeeCalculator {
	return &localCalculator{
		origin: orb.Point{origin.Lng, origin.Lat},
		tiers:  tiers,
		logger: logger,
	}
}

func (c *localCalculator) CalculateDeliveryFee(ctx context.Context, req service.DeliveryFeeRequest) (*entity.DeliveryQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	if !req.Address.HasCoordinates() {
		return nil, ErrNoCoordinates
	}

	coord := req.Address.Coordinate()
	km := geo.DistanceHaversine(c.origin, orb.Point{coord.Lng, coord.Lat}) / 1000

	fee, ok := entity.TierFee(c.tiers, km)
	if !ok {
		return nil, errors.Errorf("no delivery tier covers %.1f km", km)
	}

	c.logger.DebugContext(ctx, "Local delivery fee calculated",
		slog.Float64("distance_km", km),
		slog.Float64("fee", fee),
	)

	return &entity.DeliveryQuote{Fee: fee, DistanceKm: &km}, nil
}
