package places

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// disabledPlaces is used when no maps API key is configured. Lookups fail
// with ErrPlacesDisabled and checkout falls back to manual address entry.
type disabledPlaces struct{}

// NewDisabled creates a PlacesProvider that never resolves anything
func NewDisabled(logger *slog.Logger) service.PlacesProvider {
	logger.Warn("Maps API key not configured, address autocomplete and reverse geocoding disabled")

	return disabledPlaces{}
}

func (disabledPlaces) Enabled() bool {
	return false
}

func (disabledPlaces) Autocomplete(context.Context, string) ([]entity.PlacePrediction, error) {
	return nil, service.ErrPlacesDisabled
}

func (disabledPlaces) PlaceDetails(context.Context, string) (*entity.PlaceResult, error) {
	return nil, service.ErrPlacesDisabled
}

func (disabledPlaces) ReverseGeocode(context.Context, entity.Coordinate) (*entity.PlaceResult, error) {
	return nil, service.ErrPlacesDisabled
}
