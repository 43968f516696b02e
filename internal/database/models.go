package database

import (
	"database/sql"
	"time"
)

// ListOptions contains options for listing listings
type ListOptions struct {
	PropertyType *string
	MaxPrice     *float64
	MinBedrooms  *int
	Search       *string
	Limit        int
	Offset       int
}

// Stats represents aggregate statistics over the stored listings
type Stats struct {
	TotalListings   int            `json:"total_listings"`
	ByPropertyType  map[string]int `json:"by_property_type"`
	MultiUnit       int            `json:"multi_unit"`
	WithCoordinates int            `json:"with_coordinates"`
	AvgPrice        float64        `json:"avg_price"`
	MinPrice        float64        `json:"min_price"`
	MaxPrice        float64        `json:"max_price"`
	AvgBedrooms     float64        `json:"avg_bedrooms"`
}

// NullString is a helper to convert a possibly empty string to sql.NullString
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullFloat64 is a helper to convert *float64 to sql.NullFloat64
func NullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// NullInt64 is a helper to convert *int to sql.NullInt64
func NullInt64(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// NullTime is a helper to convert *time.Time to sql.NullTime
func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Float64Ptr converts sql.NullFloat64 to *float64
func Float64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

// IntPtr converts sql.NullInt64 to *int
func IntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

// TimePtr converts sql.NullTime to *time.Time
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}
