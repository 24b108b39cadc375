// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
)

// Device location failure reasons reported by clients
const (
	LocationErrorPermissionDenied = "permission_denied"
	LocationErrorUnavailable      = "unavailable"
)

// DeviceLocationInput is what the client's geolocation capability reported.
// It acts as the Geolocator for a single resolution.
type DeviceLocationInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error,omitempty"`
}

// Locate implements service.Geolocator
func (in *DeviceLocationInput) Locate(_ context.Context) (entity.Coordinate, error) {
	switch in.Error {
	case "":
	case LocationErrorPermissionDenied:
		return entity.Coordinate{}, domainerrors.ErrLocationPermissionDenied
	default:
		return entity.Coordinate{}, domainerrors.ErrLocationUnavailable
	}

	if in.Latitude == nil || in.Longitude == nil {
		return entity.Coordinate{}, domainerrors.ErrLocationUnavailable
	}

	return entity.Coordinate{Lat: *in.Latitude, Lng: *in.Longitude}, nil
}

// AddressUsecase turns user input into structured addresses
type AddressUsecase interface {
	// ResolveFromAutocompleteSelection extracts an address from a place result
	ResolveFromAutocompleteSelection(place *entity.PlaceResult) entity.Address

	// ResolveFromPlaceID fetches place details and extracts the address
	ResolveFromPlaceID(ctx context.Context, placeID string) (entity.Address, error)

	// ResolveFromDeviceLocation locates the device and reverse-geocodes it.
	// A geocode failure still returns the coordinates with ResolutionPartial.
	ResolveFromDeviceLocation(ctx context.Context, geolocator service.Geolocator) (entity.Address, entity.Resolution, error)

	// ResolveFromManualEntry trims user-typed fields
	ResolveFromManualEntry(fields entity.Address) entity.Address

	// Autocomplete returns suggestions; enabled is false without a places provider
	Autocomplete(ctx context.Context, input string) (predictions []entity.PlacePrediction, enabled bool, err error)
}
