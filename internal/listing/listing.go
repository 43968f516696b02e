// Package listing defines the housing listing record shared by the matcher,
// the store and the importer.
package listing

import (
	"strings"
	"time"
)

// Property types understood by the matcher
const (
	TypeApartment = "apartment"
	TypeHouse     = "house"
	TypeRoom      = "room"
)

// Listing is a single housing listing. Absent numeric fields are zero and
// absent collections are empty; coordinates are pointers because 0 is a
// valid latitude or longitude.
type Listing struct {
	ID           string     `json:"id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Address      string     `json:"address"`
	Price        float64    `json:"price"`
	Bedrooms     int        `json:"bedrooms"`
	Bathrooms    float64    `json:"bathrooms"`
	IsMultiUnit  bool       `json:"is_multi_unit,omitempty"`
	MinBedrooms  int        `json:"min_bedrooms,omitempty"`
	MaxBedrooms  int        `json:"max_bedrooms,omitempty"`
	MinBathrooms float64    `json:"min_bathrooms,omitempty"`
	MaxBathrooms float64    `json:"max_bathrooms,omitempty"`
	PropertyType string     `json:"property_type"`
	Amenities    []string   `json:"amenities"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	SquareFeet   *int       `json:"square_feet,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	AvailableAt  *time.Time `json:"available_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at,omitzero"`
	UpdatedAt    time.Time  `json:"updated_at,omitzero"`
}

// HasCoordinates reports whether both latitude and longitude are present
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// BedroomSpan returns the bedroom bounds of the listing. Single-unit
// listings return the same value twice.
func (l *Listing) BedroomSpan() (int, int) {
	if l.IsMultiUnit {
		return l.MinBedrooms, l.MaxBedrooms
	}
	return l.Bedrooms, l.Bedrooms
}

// BathroomSpan returns the bathroom bounds of the listing
func (l *Listing) BathroomSpan() (float64, float64) {
	if l.IsMultiUnit {
		return l.MinBathrooms, l.MaxBathrooms
	}
	return l.Bathrooms, l.Bathrooms
}

var addressReplacer = strings.NewReplacer(
	"avenue", "ave",
	"street", "st",
	"boulevard", "blvd",
	"drive", "dr",
	"road", "rd",
	"lane", "ln",
	"court", "ct",
	"place", "pl",
	"apartment", "apt",
	"#", "apt ",
	".", "",
	",", "",
)

var addressNoise = map[string]bool{
	"riverside":  true,
	"ca":         true,
	"california": true,
}

// NormalizeAddress reduces an address to a comparable key: lowercased,
// common suffixes abbreviated, punctuation and city/state words dropped.
func NormalizeAddress(address string) string {
	s := addressReplacer.Replace(strings.ToLower(strings.TrimSpace(address)))

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if addressNoise[w] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Float returns a pointer to f
func Float(f float64) *float64 {
	return &f
}
