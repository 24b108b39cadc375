package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mocksservice "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func component(name string, types ...string) entity.AddressComponent {
	return entity.AddressComponent{LongName: name, ShortName: name, Types: types}
}

func bolePlace() *entity.PlaceResult {
	return &entity.PlaceResult{
		PlaceID:          "place-1",
		FormattedAddress: "12 Bole Rd, Addis Ababa, Ethiopia",
		AddressComponents: []entity.AddressComponent{
			component("12", entity.ComponentStreetNumber),
			component("Bole Rd", entity.ComponentRoute),
			component("Bole", "sublocality", "political"),
			component("Addis Ababa", entity.ComponentLocality, "political"),
			component("Addis Ababa City", entity.ComponentAdminLevel1, "political"),
			component("1000", entity.ComponentPostalCode),
			component("Ethiopia", entity.ComponentCountry, "political"),
		},
		Geometry: &entity.PlaceGeometry{Location: &entity.Coordinate{Lat: 8.99, Lng: 38.78}},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestAddressService_ResolveFromAutocompleteSelection(t *testing.T) {
	srv := NewAddressService(mocksservice.NewMockPlacesProvider(t), discardLogger())

	address := srv.ResolveFromAutocompleteSelection(bolePlace())

	assert.Equal(t, "12 Bole Rd", address.Street)
	assert.Equal(t, "Addis Ababa", address.City)
	assert.Equal(t, "Addis Ababa City", address.State)
	assert.Equal(t, "1000", address.ZipCode)
	assert.Equal(t, "Ethiopia", address.Country)
	require.True(t, address.HasCoordinates())
	assert.InDelta(t, 8.99, *address.Latitude, 1e-9)
}

func TestAddressService_StreetFallbacks(t *testing.T) {
	srv := NewAddressService(mocksservice.NewMockPlacesProvider(t), discardLogger())

	tests := []struct {
		name  string
		place *entity.PlaceResult
		want  string
	}{
		{
			name: "route only",
			place: &entity.PlaceResult{AddressComponents: []entity.AddressComponent{
				component("Churchill Ave", entity.ComponentRoute),
			}},
			want: "Churchill Ave",
		},
		{
			name: "first route wins",
			place: &entity.PlaceResult{AddressComponents: []entity.AddressComponent{
				component("5", entity.ComponentStreetNumber),
				component("First Rd", entity.ComponentRoute),
				component("Second Rd", entity.ComponentRoute),
			}},
			want: "5 First Rd",
		},
		{
			name:  "place name",
			place: &entity.PlaceResult{Name: "Edna Mall", FormattedAddress: "Bole, Addis Ababa"},
			want:  "Edna Mall",
		},
		{
			name:  "formatted address",
			place: &entity.PlaceResult{FormattedAddress: "Bole, Addis Ababa"},
			want:  "Bole, Addis Ababa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, srv.ResolveFromAutocompleteSelection(tt.place).Street)
		})
	}

	assert.Equal(t, entity.Address{}, srv.ResolveFromAutocompleteSelection(nil))
}

func TestAddressService_ResolveFromPlaceID(t *testing.T) {
	places := mocksservice.NewMockPlacesProvider(t)
	places.On("PlaceDetails", mock.Anything, "place-1").Return(bolePlace(), nil).Once()
	places.On("PlaceDetails", mock.Anything, "gone").Return(nil, service.ErrNoResults).Once()
	srv := NewAddressService(places, discardLogger())

	address, err := srv.ResolveFromPlaceID(context.Background(), " place-1 ")
	require.NoError(t, err)
	assert.Equal(t, "12 Bole Rd", address.Street)

	_, err = srv.ResolveFromPlaceID(context.Background(), "gone")
	assert.ErrorIs(t, err, service.ErrNoResults)

	_, err = srv.ResolveFromPlaceID(context.Background(), "  ")
	assert.Error(t, err)
}

func TestAddressService_ResolveFromDeviceLocation(t *testing.T) {
	t.Run("geocoded", func(t *testing.T) {
		places := mocksservice.NewMockPlacesProvider(t)
		places.On("ReverseGeocode", mock.Anything, entity.Coordinate{Lat: 9.01, Lng: 38.76}).Return(bolePlace(), nil).Once()
		srv := NewAddressService(places, discardLogger())

		address, resolution, err := srv.ResolveFromDeviceLocation(context.Background(),
			&usecase.DeviceLocationInput{Latitude: floatPtr(9.01), Longitude: floatPtr(38.76)})
		require.NoError(t, err)
		assert.Equal(t, entity.ResolutionFull, resolution)
		assert.Equal(t, "12 Bole Rd", address.Street)
		// device position wins over the place geometry
		assert.InDelta(t, 9.01, *address.Latitude, 1e-9)
		assert.InDelta(t, 38.76, *address.Longitude, 1e-9)
	})

	t.Run("geocode fails", func(t *testing.T) {
		places := mocksservice.NewMockPlacesProvider(t)
		places.On("ReverseGeocode", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded")).Once()
		srv := NewAddressService(places, discardLogger())

		address, resolution, err := srv.ResolveFromDeviceLocation(context.Background(),
			&usecase.DeviceLocationInput{Latitude: floatPtr(9.01), Longitude: floatPtr(38.76)})
		require.NoError(t, err)
		assert.Equal(t, entity.ResolutionPartial, resolution)
		assert.Empty(t, address.Street)
		assert.True(t, address.HasCoordinates())
	})

	t.Run("permission denied", func(t *testing.T) {
		srv := NewAddressService(mocksservice.NewMockPlacesProvider(t), discardLogger())

		_, resolution, err := srv.ResolveFromDeviceLocation(context.Background(),
			&usecase.DeviceLocationInput{Error: usecase.LocationErrorPermissionDenied})
		assert.ErrorIs(t, err, domainerrors.ErrLocationPermissionDenied)
		assert.Equal(t, entity.ResolutionFailed, resolution)
	})

	t.Run("no coordinates", func(t *testing.T) {
		srv := NewAddressService(mocksservice.NewMockPlacesProvider(t), discardLogger())

		_, _, err := srv.ResolveFromDeviceLocation(context.Background(), &usecase.DeviceLocationInput{})
		assert.ErrorIs(t, err, domainerrors.ErrLocationUnavailable)
	})
}

func TestAddressService_ResolveFromManualEntry(t *testing.T) {
	srv := NewAddressService(mocksservice.NewMockPlacesProvider(t), discardLogger())

	address := srv.ResolveFromManualEntry(entity.Address{Street: "  Bole Rd ", City: "Addis Ababa  ", Phone: " 0911 "})

	assert.Equal(t, entity.Address{Street: "Bole Rd", City: "Addis Ababa", Phone: "0911"}, address)
}

func TestAddressService_Autocomplete(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		places := mocksservice.NewMockPlacesProvider(t)
		places.On("Enabled").Return(false)
		srv := NewAddressService(places, discardLogger())

		predictions, enabled, err := srv.Autocomplete(context.Background(), "bole")
		require.NoError(t, err)
		assert.False(t, enabled)
		assert.Empty(t, predictions)
	})

	t.Run("results", func(t *testing.T) {
		places := mocksservice.NewMockPlacesProvider(t)
		places.On("Enabled").Return(true)
		places.On("Autocomplete", mock.Anything, "bole").
			Return([]entity.PlacePrediction{{PlaceID: "place-1", Description: "Bole Rd"}}, nil).Once()
		srv := NewAddressService(places, discardLogger())

		predictions, enabled, err := srv.Autocomplete(context.Background(), "bole")
		require.NoError(t, err)
		assert.True(t, enabled)
		assert.Len(t, predictions, 1)
	})

	t.Run("zero results", func(t *testing.T) {
		places := mocksservice.NewMockPlacesProvider(t)
		places.On("Enabled").Return(true)
		places.On("Autocomplete", mock.Anything, "zzz").Return(nil, service.ErrNoResults).Once()
		srv := NewAddressService(places, discardLogger())

		predictions, enabled, err := srv.Autocomplete(context.Background(), "zzz")
		require.NoError(t, err)
		assert.True(t, enabled)
		assert.NotNil(t, predictions)
		assert.Empty(t, predictions)
	})
}
