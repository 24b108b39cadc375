package fee

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiersFromConfig_OrdersAndFillsBounds(t *testing.T) {
	tiers := TiersFromConfig([]config.FeeTierConfig{
		{UpToKm: 0, Fee: 400},
		{UpToKm: 10, Fee: 300},
		{UpToKm: 5, Fee: 200},
	})

	assert.Equal(t, []entity.FeeTier{
		{FromKm: 0, UpToKm: 5, Fee: 200},
		{FromKm: 5, UpToKm: 10, Fee: 300},
		{FromKm: 10, UpToKm: 0, Fee: 400},
	}, tiers)
}

func TestTierFee_Boundaries(t *testing.T) {
	tiers := TiersFromConfig(config.DefaultFeeTiers())

	tests := []struct {
		km   float64
		want float64
	}{
		{km: 0, want: 200},
		{km: 5, want: 200},
		{km: 5.01, want: 300},
		{km: 10, want: 300},
		{km: 42, want: 400},
	}
	for _, tt := range tests {
		fee, ok := entity.TierFee(tiers, tt.km)
		require.True(t, ok)
		assert.InDelta(t, tt.want, fee, 0.001, "km=%v", tt.km)
	}
}

func addressAt(lat, lng float64) entity.Address {
	return entity.Address{Street: "s", City: "c", Phone: "p"}.WithCoordinate(entity.Coordinate{Lat: lat, Lng: lng})
}

func TestLocalCalculator_PricesByDistance(t *testing.T) {
	origin := entity.Coordinate{Lat: 9.0, Lng: 38.75}
	calc := NewLocalCalculator(origin, TiersFromConfig(config.DefaultFeeTiers()), slog.New(slog.NewTextHandler(io.Discard, nil)))

	// roughly 0.1 degree of latitude is 11 km
	tests := []struct {
		name string
		addr entity.Address
		want float64
	}{
		{name: "same spot", addr: addressAt(9.0, 38.75), want: 200},
		{name: "about 7 km", addr: addressAt(9.063, 38.75), want: 300},
		{name: "about 22 km", addr: addressAt(9.2, 38.75), want: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := calc.CalculateDeliveryFee(context.Background(), service.DeliveryFeeRequest{Address: tt.addr})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, quote.Fee, 0.001)
			require.NotNil(t, quote.DistanceKm)
		})
	}
}

func TestLocalCalculator_RequiresCoordinates(t *testing.T) {
	calc := NewLocalCalculator(entity.Coordinate{}, TiersFromConfig(config.DefaultFeeTiers()), slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := calc.CalculateDeliveryFee(context.Background(), service.DeliveryFeeRequest{Address: entity.Address{City: "x"}})
	assert.True(t, errors.Is(err, ErrNoCoordinates))
}
