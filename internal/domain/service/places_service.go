package service

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrPlacesDisabled is returned by every lookup when no places provider is configured
var ErrPlacesDisabled = errors.New("places service is disabled")

// ErrNoResults is returned when the places service found nothing for the query
var ErrNoResults = errors.New("places service returned no results")

// PlacesProvider is the address autocomplete and geocoding capability.
// Checkout depends on this abstraction; the disabled implementation keeps
// manual entry working when the external service is unavailable.
type PlacesProvider interface {
	// Autocomplete returns suggestions for free-text input
	Autocomplete(ctx context.Context, input string) ([]entity.PlacePrediction, error)

	// PlaceDetails fetches the structured result for a selected suggestion
	PlaceDetails(ctx context.Context, placeID string) (*entity.PlaceResult, error)

	// ReverseGeocode resolves a coordinate pair to the best matching place
	ReverseGeocode(ctx context.Context, coord entity.Coordinate) (*entity.PlaceResult, error)

	// Enabled reports whether lookups can succeed at all
	Enabled() bool
}

// Geolocator yields the device position. Implementations return
// domain ErrLocationPermissionDenied or ErrLocationUnavailable on failure.
type Geolocator interface {
	Locate(ctx context.Context) (entity.Coordinate, error)
}
