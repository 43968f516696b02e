package preference

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/housematch/internal/textnorm"
)

func newTestExtractor() *Extractor {
	return NewExtractor(textnorm.New(), nil)
}

func price(v float64) *float64 { return &v }

func TestExtract_Rooms(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		bedrooms  Count[int]
		bathrooms Count[float64]
	}{
		{name: "exact bedrooms", query: "2 bedroom apartment", bedrooms: Exact(2)},
		{name: "hyphenated bedrooms", query: "looking for a 3-bedroom house", bedrooms: Exact(3)},
		{name: "abbreviated bedrooms", query: "1br near ucr", bedrooms: Exact(1)},
		{name: "bedroom range", query: "2-4 bedroom apartment", bedrooms: Between(2, 4)},
		{name: "spaced bedroom range", query: "2 - 3 beds", bedrooms: Between(2, 3)},
		{name: "studio", query: "studio apartment downtown", bedrooms: Exact(0)},
		{name: "exact count wins over studio", query: "studio or 1 bedroom", bedrooms: Exact(1)},
		{name: "exact bathrooms", query: "2 bedroom 1 bath", bedrooms: Exact(2), bathrooms: Exact(1.0)},
		{name: "half bathrooms", query: "1.5 bath condo", bathrooms: Exact(1.5)},
		{name: "bathroom range", query: "1-2 baths", bathrooms: Between(1.0, 2.0)},
		{name: "nothing", query: "somewhere nice"},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Extract(tt.query)
			assert.Equal(t, tt.bedrooms, r.Bedrooms)
			assert.Equal(t, tt.bathrooms, r.Bathrooms)
		})
	}
}

func TestExtract_Price(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantMin *float64
		wantMax *float64
	}{
		{name: "under", query: "apartment under $1,500", wantMax: price(1500)},
		{name: "less than", query: "less than 1200 a month", wantMax: price(1200)},
		{name: "maximum", query: "maximum $2000", wantMax: price(2000)},
		{name: "over", query: "over 800", wantMin: price(800)},
		{name: "max wins over min", query: "over 800 but under 1500", wantMax: price(1500)},
		{name: "range with to", query: "1000 to 1500", wantMin: price(1000), wantMax: price(1500)},
		{name: "range with dollars", query: "$1,000-$1,400 apartment", wantMin: price(1000), wantMax: price(1400)},
		{name: "reversed range", query: "$1500 - $1000", wantMin: price(1000), wantMax: price(1500)},
		{name: "exact price band", query: "$1000", wantMin: price(900), wantMax: price(1100)},
		{name: "large amounts", query: "under $1,500,000", wantMax: price(1500000)},
		{name: "room range is not a price", query: "2-4 bedroom apartment"},
		{name: "room count is not a price", query: "2-bedroom 1000-1500", wantMin: price(1000), wantMax: price(1500)},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Extract(tt.query)
			assert.Equal(t, tt.wantMin, r.MinPrice)
			assert.Equal(t, tt.wantMax, r.MaxPrice)
		})
	}
}

func TestExtract_PropertyType(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{query: "cheap apt", want: "apartment"},
		{query: "a condominium with a pool", want: "apartment"},
		{query: "town house for rent", want: "house"},
		{query: "shared room", want: "room"},
		{query: "apartment or house", want: "apartment"},
		{query: "2 bedroom near campus", want: "room"},
		{query: "apartments", want: ""},
		{query: "", want: ""},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.query).PropertyType)
		})
	}
}

func TestExtract_Amenities(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "single", query: "place with parking", want: []string{"parking"}},
		{name: "table order", query: "house with a/c and w/d", want: []string{"laundry", "air-conditioning"}},
		{name: "duplicates suppressed", query: "parking garage for my car", want: []string{"parking"}},
		{name: "multi word keyword", query: "utilities included and high-speed internet", want: []string{"utilities-included", "internet"}},
		{name: "hyphenated keyword", query: "pet-friendly", want: []string{"pet-friendly"}},
		{name: "whole words only", query: "Jackson street", want: []string{}},
		{name: "none", query: "anything", want: []string{}},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.query).Amenities)
		})
	}
}

func TestExtract_NearCampus(t *testing.T) {
	e := newTestExtractor()

	assert.True(t, e.Extract("close to UCR").NearCampus)
	assert.True(t, e.Extract("walking distance to class").NearCampus)
	assert.True(t, e.Extract("universityview apartments").NearCampus, "proximity uses substring matching")
	assert.False(t, e.Extract("downtown loft").NearCampus)

	custom := NewExtractor(textnorm.New(), []string{" Stanford "})
	assert.True(t, custom.Extract("near stanford").NearCampus)
	assert.False(t, custom.Extract("near ucr").NearCampus)
}

func TestExtract_Keywords(t *testing.T) {
	e := newTestExtractor()

	r := e.Extract("Quiet apartment near campus")
	assert.Equal(t, []string{"quiet", "apart", "near", "campus"}, r.Keywords)
}

func TestExtract_Empty(t *testing.T) {
	r := newTestExtractor().Extract("")

	assert.True(t, r.IsEmpty())
	assert.Empty(t, r.Keywords)
	assert.NotNil(t, r.Amenities)
	assert.Nil(t, r.MinPrice)
	assert.Nil(t, r.MaxPrice)
}

func TestExtract_Deterministic(t *testing.T) {
	e := newTestExtractor()
	q := "2 bedroom apartment under $1500 with parking and a pool near ucr"
	assert.Equal(t, e.Extract(q), e.Extract(q))
}

func TestCount(t *testing.T) {
	var unset Count[int]
	assert.False(t, unset.IsSet())
	assert.Equal(t, "", unset.String())

	exact := Exact(2)
	v, ok := exact.Exact()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	_, _, ok = exact.Range()
	assert.False(t, ok)
	assert.Equal(t, "2", exact.String())

	rng := Between(4, 2)
	lo, hi, ok := rng.Range()
	assert.True(t, ok)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 4, hi)
	assert.Equal(t, "2-4", rng.String())
	assert.Equal(t, "1.5", Exact(1.5).String())
}

func TestRecord_MarshalJSON(t *testing.T) {
	r := newTestExtractor().Extract("2-3 bedroom 1 bath under $1200")

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{"min": 2.0, "max": 3.0}, got["bedrooms"])
	assert.Equal(t, map[string]any{"exact": 1.0}, got["bathrooms"])
	assert.Nil(t, got["min_price"])
	assert.Equal(t, 1200.0, got["max_price"])
}

func TestAmenityTags(t *testing.T) {
	tags := AmenityTags()
	assert.Len(t, tags, 12)
	assert.Equal(t, "parking", tags[0])
	assert.Equal(t, "internet", tags[11])
}
