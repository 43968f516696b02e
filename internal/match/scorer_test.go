package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vijay-prabhu/housematch/internal/listing"
	"github.com/vijay-prabhu/housematch/internal/preference"
	"github.com/vijay-prabhu/housematch/internal/textnorm"
)

func newTestScorer() *Scorer {
	return NewScorer(textnorm.New(), DefaultCampus)
}

func ptr(v float64) *float64 { return &v }

func TestScore_Bedrooms(t *testing.T) {
	tests := []struct {
		name      string
		want      preference.Count[int]
		listing   listing.Listing
		wantScore int
		wantWhy   []string
	}{
		{
			name:      "exact match",
			want:      preference.Exact(2),
			listing:   listing.Listing{Bedrooms: 2},
			wantScore: 10,
			wantWhy:   []string{"Exactly 2 bedrooms as requested"},
		},
		{
			name:      "off by one",
			want:      preference.Exact(2),
			listing:   listing.Listing{Bedrooms: 3},
			wantScore: 5,
			wantWhy:   []string{"Close to desired bedroom count (within 1)"},
		},
		{
			name:      "far off is penalized",
			want:      preference.Exact(2),
			listing:   listing.Listing{Bedrooms: 5},
			wantScore: -6,
			wantWhy:   []string{},
		},
		{
			name:      "multi-unit contains desired count",
			want:      preference.Exact(2),
			listing:   listing.Listing{IsMultiUnit: true, MinBedrooms: 1, MaxBedrooms: 3},
			wantScore: 10,
			wantWhy:   []string{"Has the desired 2 bedrooms"},
		},
		{
			name:      "multi-unit far off",
			want:      preference.Exact(1),
			listing:   listing.Listing{IsMultiUnit: true, MinBedrooms: 3, MaxBedrooms: 4},
			wantScore: -4,
			wantWhy:   []string{},
		},
		{
			name:      "range overlaps multi-unit",
			want:      preference.Between(2, 4),
			listing:   listing.Listing{IsMultiUnit: true, MinBedrooms: 1, MaxBedrooms: 3},
			wantScore: 8,
			wantWhy:   []string{"Bedroom options within desired range"},
		},
		{
			name:      "range contains single unit",
			want:      preference.Between(2, 4),
			listing:   listing.Listing{Bedrooms: 3},
			wantScore: 8,
			wantWhy:   []string{"Bedrooms within desired range"},
		},
		{
			name:      "range misses single unit",
			want:      preference.Between(2, 4),
			listing:   listing.Listing{Bedrooms: 5},
			wantScore: -5,
			wantWhy:   []string{},
		},
		{
			name:      "missing listing fields default to zero",
			want:      preference.Exact(2),
			listing:   listing.Listing{},
			wantScore: -4,
			wantWhy:   []string{},
		},
		{
			name:      "no preference",
			listing:   listing.Listing{Bedrooms: 2},
			wantScore: 0,
			wantWhy:   []string{},
		},
	}

	s := newTestScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(&tt.listing, &preference.Record{Bedrooms: tt.want})
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantWhy, got.Explanation)
		})
	}
}

func TestScore_Bathrooms(t *testing.T) {
	tests := []struct {
		name      string
		want      preference.Count[float64]
		listing   listing.Listing
		wantScore int
	}{
		{name: "exact", want: preference.Exact(1.5), listing: listing.Listing{Bathrooms: 1.5}, wantScore: 8},
		{name: "within half", want: preference.Exact(2.0), listing: listing.Listing{Bathrooms: 1.5}, wantScore: 4},
		{name: "penalty", want: preference.Exact(3.0), listing: listing.Listing{Bathrooms: 1}, wantScore: -4},
		{name: "penalty truncates", want: preference.Exact(2.5), listing: listing.Listing{Bathrooms: 1.25}, wantScore: -2},
		{name: "multi-unit contains", want: preference.Exact(2.0), listing: listing.Listing{IsMultiUnit: true, MinBathrooms: 1, MaxBathrooms: 2}, wantScore: 8},
		{name: "range overlaps multi-unit", want: preference.Between(1.0, 2.0), listing: listing.Listing{IsMultiUnit: true, MinBathrooms: 2, MaxBathrooms: 3}, wantScore: 6},
		{name: "range contains", want: preference.Between(1.0, 2.0), listing: listing.Listing{Bathrooms: 1.5}, wantScore: 6},
		{name: "range misses", want: preference.Between(1.0, 2.0), listing: listing.Listing{Bathrooms: 3}, wantScore: -4},
	}

	s := newTestScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(&tt.listing, &preference.Record{Bathrooms: tt.want})
			assert.Equal(t, tt.wantScore, got.Score)
		})
	}

	got := s.Score(&listing.Listing{Bathrooms: 1.5}, &preference.Record{Bathrooms: preference.Exact(1.5)})
	assert.Equal(t, []string{"Exactly 1.5 bathrooms as requested"}, got.Explanation)
}

func TestScore_Price(t *testing.T) {
	tests := []struct {
		name      string
		min, max  *float64
		price     float64
		wantScore int
		wantWhy   []string
	}{
		{name: "within range", min: ptr(1000), max: ptr(1500), price: 1200, wantScore: 15, wantWhy: []string{"Price within your budget range"}},
		{name: "below range", min: ptr(1000), max: ptr(1500), price: 900, wantScore: 5, wantWhy: []string{"Price below your minimum budget (good value)"}},
		{name: "slightly above range", min: ptr(1000), max: ptr(1500), price: 1600, wantScore: 3, wantWhy: []string{"Price slightly over your maximum budget"}},
		{name: "far above range", min: ptr(1000), max: ptr(1500), price: 2000, wantScore: -6, wantWhy: []string{}},
		{name: "well under max", max: ptr(1500), price: 1000, wantScore: 15, wantWhy: []string{"Significantly under your maximum budget"}},
		{name: "under max", max: ptr(1500), price: 1400, wantScore: 15, wantWhy: []string{"Within your maximum budget"}},
		{name: "slightly over max", max: ptr(1500), price: 1600, wantScore: 2, wantWhy: []string{"Slightly over your maximum budget"}},
		{name: "far over max", max: ptr(1500), price: 3000, wantScore: -25, wantWhy: []string{}},
		{name: "meets min", min: ptr(1000), price: 1200, wantScore: 5, wantWhy: []string{"Meets your minimum price requirement"}},
		{name: "below min", min: ptr(1000), price: 800, wantScore: 0, wantWhy: []string{}},
		{name: "zero max does not divide by zero", max: ptr(0), price: 500, wantScore: 0, wantWhy: []string{}},
	}

	s := newTestScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(&listing.Listing{Price: tt.price}, &preference.Record{MinPrice: tt.min, MaxPrice: tt.max})
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantWhy, got.Explanation)
		})
	}
}

func TestScore_PropertyType(t *testing.T) {
	s := newTestScorer()

	got := s.Score(&listing.Listing{PropertyType: "Apartment"}, &preference.Record{PropertyType: "apartment"})
	assert.Equal(t, 8, got.Score)
	assert.Equal(t, []string{"Matches your preferred apartment property type"}, got.Explanation)

	got = s.Score(&listing.Listing{PropertyType: "house"}, &preference.Record{PropertyType: "apartment"})
	assert.Equal(t, 0, got.Score)
}

func TestScore_Amenities(t *testing.T) {
	tests := []struct {
		name      string
		want      []string
		have      []string
		wantScore int
		wantWhy   []string
	}{
		{
			name:      "hyphen parts match",
			want:      []string{"pet-friendly"},
			have:      []string{"Pet Friendly Community"},
			wantScore: 5,
			wantWhy:   []string{"Has your desired pet-friendly amenity"},
		},
		{
			name:      "several matches",
			want:      []string{"parking", "pool", "gym"},
			have:      []string{"Covered Parking", "Swimming Pool"},
			wantScore: 10,
			wantWhy:   []string{"Includes your desired parking and pool amenities"},
		},
		{
			name:      "three matches",
			want:      []string{"parking", "pool", "air-conditioning"},
			have:      []string{"Garage parking", "Pool", "Central Air"},
			wantScore: 15,
			wantWhy:   []string{"Includes your desired parking, pool and air-conditioning amenities"},
		},
		{
			name:      "listing without amenities",
			want:      []string{"parking"},
			wantScore: 0,
			wantWhy:   []string{},
		},
	}

	s := newTestScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(&listing.Listing{Amenities: tt.have}, &preference.Record{Amenities: tt.want})
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantWhy, got.Explanation)
		})
	}
}

func TestScore_Proximity(t *testing.T) {
	at := func(miles float64) listing.Listing {
		return listing.Listing{
			Latitude:  ptr(DefaultCampus.Latitude + miles/DefaultCampus.MilesPerDegree),
			Longitude: ptr(DefaultCampus.Longitude),
		}
	}

	tests := []struct {
		name      string
		listing   listing.Listing
		near      bool
		wantScore int
		wantWhy   []string
	}{
		{name: "half a mile", listing: at(0.5), near: true, wantScore: 15, wantWhy: []string{"Very close to UCR (less than 1 mile)"}},
		{name: "mile and a half", listing: at(1.5), near: true, wantScore: 10, wantWhy: []string{"Close to UCR (less than 2 miles)"}},
		{name: "three miles", listing: at(3), near: true, wantScore: 5, wantWhy: []string{"Within 5 miles of UCR"}},
		{name: "ten miles", listing: at(10), near: true, wantScore: 0, wantWhy: []string{}},
		{name: "not requested", listing: at(0.5), near: false, wantScore: 0, wantWhy: []string{}},
		{name: "no coordinates", listing: listing.Listing{Latitude: ptr(DefaultCampus.Latitude)}, near: true, wantScore: 0, wantWhy: []string{}},
	}

	s := newTestScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(&tt.listing, &preference.Record{NearCampus: tt.near})
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantWhy, got.Explanation)
		})
	}
}

func TestScore_CampusName(t *testing.T) {
	campus := Campus{Name: "Main Campus", Latitude: 10, Longitude: 20, MilesPerDegree: 69}
	s := NewScorer(textnorm.New(), campus)

	got := s.Score(&listing.Listing{Latitude: ptr(10), Longitude: ptr(20)}, &preference.Record{NearCampus: true})
	assert.Equal(t, []string{"Very close to Main Campus (less than 1 mile)"}, got.Explanation)
}

func TestScore_Keywords(t *testing.T) {
	n := textnorm.New()
	s := NewScorer(n, DefaultCampus)
	l := listing.Listing{Title: "Quiet apartment", Description: "Fully furnished unit"}

	got := s.Score(&l, &preference.Record{Keywords: n.Normalize("quiet furnished apartment")})
	assert.Equal(t, 6, got.Score)
	assert.Equal(t, []string{"Many of your keywords match the description"}, got.Explanation)

	got = s.Score(&l, &preference.Record{Keywords: n.Normalize("quiet quiet street")})
	assert.Equal(t, 2, got.Score)
	assert.Equal(t, []string{"Some of your keywords match the description"}, got.Explanation)
}

func TestScore_ExplanationOrder(t *testing.T) {
	s := newTestScorer()
	l := listing.Listing{
		Bedrooms:     2,
		Bathrooms:    1,
		Price:        1200,
		PropertyType: "apartment",
		Amenities:    []string{"Parking"},
		Latitude:     ptr(DefaultCampus.Latitude),
		Longitude:    ptr(DefaultCampus.Longitude),
	}
	p := preference.Record{
		Bedrooms:     preference.Exact(2),
		Bathrooms:    preference.Exact(1.0),
		MaxPrice:     ptr(1300),
		PropertyType: "apartment",
		Amenities:    []string{"parking"},
		NearCampus:   true,
	}

	got := s.Score(&l, &p)
	assert.Equal(t, 10+8+15+8+5+15, got.Score)
	assert.Equal(t, []string{
		"Exactly 2 bedrooms as requested",
		"Exactly 1 bathrooms as requested",
		"Within your maximum budget",
		"Matches your preferred apartment property type",
		"Has your desired parking amenity",
		"Very close to UCR (less than 1 mile)",
	}, got.Explanation)
}
