package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vijay-prabhu/housematch/internal/importer"
	"github.com/vijay-prabhu/housematch/internal/listing"
)

func TestExportCSV_RoundTrip(t *testing.T) {
	sqft := 800
	listings := []listing.Listing{
		{
			ID:           "a1",
			Title:        "University Towers",
			Description:  "Across from campus, furnished",
			Address:      "3500 Iowa Ave, Riverside, CA 92507",
			Price:        1250,
			Bedrooms:     2,
			Bathrooms:    1.5,
			PropertyType: listing.TypeApartment,
			Amenities:    []string{"Pool", "Gym"},
			Latitude:     listing.Float(33.9751),
			Longitude:    listing.Float(-117.3312),
			SquareFeet:   &sqft,
		},
		{
			ID:        "b2",
			Title:     "Shared Room",
			Address:   "9 Elm St",
			Price:     650,
			Bedrooms:  1,
			Amenities: []string{},
		},
	}

	var buf bytes.Buffer
	if err := exportCSV(&buf, listings); err != nil {
		t.Fatalf("exportCSV() error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "id,title,description,address,price,bedrooms") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	decoded, err := importer.DecodeCSV(&buf)
	if err != nil {
		t.Fatalf("DecodeCSV() error: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(decoded))
	}

	got := decoded[0]
	if got.Title != "University Towers" || got.Address != "3500 Iowa Ave, Riverside, CA 92507" {
		t.Errorf("unexpected text fields: %+v", got)
	}
	if got.Price != 1250 || got.Bedrooms != 2 || got.Bathrooms != 1.5 {
		t.Errorf("unexpected numbers: %v %d %v", got.Price, got.Bedrooms, got.Bathrooms)
	}
	if strings.Join(got.Amenities, ",") != "Pool,Gym" {
		t.Errorf("unexpected amenities: %v", got.Amenities)
	}
	if !got.HasCoordinates() || *got.Latitude != 33.9751 {
		t.Errorf("expected coordinates to survive, got %v", got.Latitude)
	}
	if got.SquareFeet == nil || *got.SquareFeet != 800 {
		t.Errorf("expected square feet 800, got %v", got.SquareFeet)
	}

	if decoded[1].HasCoordinates() || decoded[1].SquareFeet != nil {
		t.Errorf("expected optional fields to stay empty: %+v", decoded[1])
	}
}

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{45, ColorGreen},
		{30, ColorGreen},
		{12, ColorYellow},
		{0, ColorRed},
		{-5, ColorRed},
	}

	for _, tt := range tests {
		if got := ScoreColor(tt.score); got != tt.want {
			t.Errorf("ScoreColor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestTerminalColor(t *testing.T) {
	plain := &Terminal{UseColor: false}
	if got := plain.Color(ColorGreen, "12"); got != "12" {
		t.Errorf("expected plain text, got %q", got)
	}

	colored := &Terminal{UseColor: true}
	if got := colored.Color(ColorGreen, "12"); got != ColorGreen+"12"+ColorReset {
		t.Errorf("unexpected colored text %q", got)
	}
}
