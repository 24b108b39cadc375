// Package places implements address autocomplete and geocoding.
package places

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"googlemaps.github.io/maps"
)

const statusZeroResults = "ZERO_RESULTS"

var detailsFields = []maps.PlaceDetailsFieldMask{
	maps.PlaceDetailsFieldMaskAddressComponent,
	maps.PlaceDetailsFieldMaskFormattedAddress,
	maps.PlaceDetailsFieldMaskGeometry,
	maps.PlaceDetailsFieldMaskName,
	maps.PlaceDetailsFieldMaskPlaceID,
}

type googlePlaces struct {
	client   *maps.Client
	language string
	region   string
	logger   *slog.Logger
}

// NewGooglePlaces creates a PlacesProvider on top of the Google Maps web services
func NewGooglePlaces(cfg *config.MapsConfig, httpClient *http.Client, logger *slog.Logger) (service.PlacesProvider, error) {
	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create maps client")
	}

	return &googlePlaces{
		client:   client,
		language: cfg.Language,
		region:   cfg.Region,
		logger:   logger,
	}, nil
}

func (g *googlePlaces) Enabled() bool {
	return true
}

func (g *googlePlaces) Autocomplete(ctx context.Context, input string) ([]entity.PlacePrediction, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return []entity.PlacePrediction{}, nil
	}

	req := &maps.PlaceAutocompleteRequest{
		Input:    input,
		Language: g.language,
		Types:    maps.AutocompletePlaceTypeAddress,
	}
	if g.region != "" {
		req.Components = map[maps.Component][]string{maps.ComponentCountry: {g.region}}
	}

	resp, err := g.client.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, mapsError("autocomplete", err)
	}
	if len(resp.Predictions) == 0 {
		return nil, service.ErrNoResults
	}

	predictions := make([]entity.PlacePrediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		predictions = append(predictions, entity.PlacePrediction{PlaceID: p.PlaceID, Description: p.Description})
	}

	return predictions, nil
}

func (g *googlePlaces) PlaceDetails(ctx context.Context, placeID string) (*entity.PlaceResult, error) {
	result, err := g.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID:  placeID,
		Language: g.language,
		Fields:   detailsFields,
	})
	if err != nil {
		return nil, mapsError("place details", err)
	}
	if result.PlaceID == "" && result.FormattedAddress == "" && len(result.AddressComponents) == 0 {
		return nil, service.ErrNoResults
	}

	return toPlaceResult(result.PlaceID, result.Name, result.FormattedAddress, result.AddressComponents, result.Geometry), nil
}

func (g *googlePlaces) ReverseGeocode(ctx context.Context, coord entity.Coordinate) (*entity.PlaceResult, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: coord.Lat, Lng: coord.Lng},
		Language: g.language,
		Region:   g.region,
	})
	if err != nil {
		return nil, mapsError("reverse geocode", err)
	}
	if len(results) == 0 {
		return nil, service.ErrNoResults
	}

	r := results[0]

	return toPlaceResult(r.PlaceID, "", r.FormattedAddress, r.AddressComponents, r.Geometry), nil
}

// mapsError maps a ZERO_RESULTS status to ErrNoResults and keeps the
// service status text in every other error.
func mapsError(op string, err error) error {
	if strings.Contains(err.Error(), statusZeroResults) {
		return service.ErrNoResults
	}

	return errors.Wrapf(err, "%s failed", op)
}

func toPlaceResult(placeID, name, formatted string, components []maps.AddressComponent, geometry maps.AddressGeometry) *entity.PlaceResult {
	result := &entity.PlaceResult{
		PlaceID:           placeID,
		Name:              name,
		FormattedAddress:  formatted,
		AddressComponents: make([]entity.AddressComponent, 0, len(components)),
	}
	for _, c := range components {
		result.AddressComponents = append(result.AddressComponents, entity.AddressComponent{
			LongName:  c.LongName,
			ShortName: c.ShortName,
			Types:     c.Types,
		})
	}

	// the zero point stands for a missing geometry
	if loc := geometry.Location; loc.Lat != 0 || loc.Lng != 0 {
		result.Geometry = &entity.PlaceGeometry{Location: &entity.Coordinate{Lat: loc.Lat, Lng: loc.Lng}}
	}

	return result
}
