// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

// addressService implements the AddressUsecase interface.
type addressService struct {
	places service.PlacesProvider
	logger *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(places service.PlacesProvider, logger *slog.Logger) usecase.AddressUsecase {
	return &addressService{places: places, logger: logger}
}

func (srv *addressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveFromAutocompleteSelection scans the typed address components.
func (srv *addressService) ResolveFromAutocompleteSelection(place *entity.PlaceResult) entity.Address {
	if place == nil {
		return entity.Address{}
	}

	return addressFromPlace(place)
}

// ResolveFromPlaceID fetches place details and extracts the address.
func (srv *addressService) ResolveFromPlaceID(ctx context.Context, placeID string) (entity.Address, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return entity.Address{}, errors.New("place id is required")
	}

	place, err := srv.places.PlaceDetails(ctx, placeID)
	if err != nil {
		return entity.Address{}, errors.Wrap(err, "place details")
	}

	return addressFromPlace(place), nil
}

// ResolveFromDeviceLocation locates the device, then reverse-geocodes.
func (srv *addressService) ResolveFromDeviceLocation(ctx context.Context, geolocator service.Geolocator) (entity.Address, entity.Resolution, error) {
	coord, err := geolocator.Locate(ctx)
	if err != nil {
		return entity.Address{}, entity.ResolutionFailed, err
	}

	coordsOnly := entity.Address{}.WithCoordinate(coord)

	place, err := srv.places.ReverseGeocode(ctx, coord)
	if err != nil {
		srv.log(ctx).WarnContext(ctx, "Reverse geocode failed, keeping raw coordinates",
			slog.Float64("lat", coord.Lat),
			slog.Float64("lng", coord.Lng),
			slog.Any("error", err),
		)

		return coordsOnly, entity.ResolutionPartial, nil
	}

	address := addressFromPlace(place)
	// the device position is more precise than the geocoded place
	address = address.WithCoordinate(coord)

	return address, resolutionOf(address), nil
}

// ResolveFromManualEntry trims every field; nothing else is normalised.
func (srv *addressService) ResolveFromManualEntry(fields entity.Address) entity.Address {
	return fields.Trimmed()
}

// Autocomplete is a passthrough to the places provider.
func (srv *addressService) Autocomplete(ctx context.Context, input string) ([]entity.PlacePrediction, bool, error) {
	if !srv.places.Enabled() {
		return []entity.PlacePrediction{}, false, nil
	}

	predictions, err := srv.places.Autocomplete(ctx, input)
	if err != nil {
		if errors.Is(err, service.ErrNoResults) {
			return []entity.PlacePrediction{}, true, nil
		}

		return nil, true, errors.Wrap(err, "autocomplete")
	}

	return predictions, true, nil
}

// addressFromPlace applies the component scanning rule: street number and
// route are joined with a space, the first match wins for the other fields,
// and the place name or formatted address stands in for a missing street.
func addressFromPlace(place *entity.PlaceResult) entity.Address {
	var address entity.Address
	var streetNumber, route string
	var haveNumber, haveRoute bool

	for _, component := range place.AddressComponents {
		switch {
		case component.HasType(entity.ComponentStreetNumber) && !haveNumber:
			streetNumber, haveNumber = component.LongName, true
		case component.HasType(entity.ComponentRoute) && !haveRoute:
			route, haveRoute = component.LongName, true
		}

		if component.HasType(entity.ComponentLocality) && address.City == "" {
			address.City = component.LongName
		}
		if component.HasType(entity.ComponentAdminLevel1) && address.State == "" {
			address.State = component.LongName
		}
		if component.HasType(entity.ComponentPostalCode) && address.ZipCode == "" {
			address.ZipCode = component.LongName
		}
		if component.HasType(entity.ComponentCountry) && address.Country == "" {
			address.Country = component.LongName
		}
	}

	address.Street = strings.TrimSpace(streetNumber + " " + route)
	if address.Street == "" {
		if name := strings.TrimSpace(place.Name); name != "" {
			address.Street = name
		} else {
			address.Street = strings.TrimSpace(place.FormattedAddress)
		}
	}

	if loc, ok := place.Location(); ok {
		address = address.WithCoordinate(loc)
	}

	return address
}

func resolutionOf(address entity.Address) entity.Resolution {
	if address.ReadyForQuote() {
		return entity.ResolutionFull
	}

	return entity.ResolutionPartial
}
