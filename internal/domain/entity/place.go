package entity

import "slices"

// Address component type tags used by the places service.
const (
	ComponentStreetNumber = "street_number"
	ComponentRoute        = "route"
	ComponentLocality     = "locality"
	ComponentAdminLevel1  = "administrative_area_level_1"
	ComponentPostalCode   = "postal_code"
	ComponentCountry      = "country"
)

// AddressComponent is one typed token of a place result.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// HasType reports whether the component is tagged with t.
func (c AddressComponent) HasType(t string) bool {
	return slices.Contains(c.Types, t)
}

// PlaceGeometry holds the position of a place result.
type PlaceGeometry struct {
	Location *Coordinate `json:"location,omitempty"`
}

// PlaceResult mirrors a places/geocoding result as sent by the places
// service or forwarded by a frontend after an autocomplete selection.
type PlaceResult struct {
	PlaceID           string             `json:"place_id,omitempty"`
	Name              string             `json:"name,omitempty"`
	FormattedAddress  string             `json:"formatted_address,omitempty"`
	AddressComponents []AddressComponent `json:"address_components"`
	Geometry          *PlaceGeometry     `json:"geometry,omitempty"`
}

// Location returns the geometry location, if any.
func (p PlaceResult) Location() (Coordinate, bool) {
	if p.Geometry == nil || p.Geometry.Location == nil {
		return Coordinate{}, false
	}

	return *p.Geometry.Location, true
}

// PlacePrediction is a single autocomplete suggestion.
type PlacePrediction struct {
	PlaceID     string `json:"placeId"`
	Description string `json:"description"`
}
