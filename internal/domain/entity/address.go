// Package entity contains the core business objects of the project.
package entity

import "strings"

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is a delivery address captured during checkout.
// It lives for the duration of one checkout session and is not persisted.
type Address struct {
	Street    string   `json:"street"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zipCode"`
	Country   string   `json:"country"`
	Phone     string   `json:"phone"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (a Address) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// Coordinate returns the address position. Callers check HasCoordinates first.
func (a Address) Coordinate() Coordinate {
	if !a.HasCoordinates() {
		return Coordinate{}
	}

	return Coordinate{Lat: *a.Latitude, Lng: *a.Longitude}
}

// WithCoordinate returns a copy of the address positioned at c.
func (a Address) WithCoordinate(c Coordinate) Address {
	lat, lng := c.Lat, c.Lng
	a.Latitude = &lat
	a.Longitude = &lng

	return a
}

// Trimmed returns a copy with surrounding whitespace removed from every text field.
func (a Address) Trimmed() Address {
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.ZipCode = strings.TrimSpace(a.ZipCode)
	a.Country = strings.TrimSpace(a.Country)
	a.Phone = strings.TrimSpace(a.Phone)

	return a
}

// ReadyForQuote reports whether the address carries enough to ask for a delivery fee.
func (a Address) ReadyForQuote() bool {
	return strings.TrimSpace(a.Street) != "" && strings.TrimSpace(a.City) != ""
}

// SameDestination reports whether b would be quoted like a: same street and
// city, and the same position when both carry one.
func (a Address) SameDestination(b Address) bool {
	a, b = a.Trimmed(), b.Trimmed()
	if !strings.EqualFold(a.Street, b.Street) || !strings.EqualFold(a.City, b.City) {
		return false
	}
	if a.HasCoordinates() && b.HasCoordinates() {
		return a.Coordinate() == b.Coordinate()
	}

	return true
}

// Resolution describes how completely an address was resolved.
type Resolution string

const (
	ResolutionFull    Resolution = "full"
	ResolutionPartial Resolution = "partial" // coordinates only, textual fields empty
	ResolutionFailed  Resolution = "failed"  // nothing resolved, previous values kept
	ResolutionManual  Resolution = "manual"
)
