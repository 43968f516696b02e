package importer

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vijay-prabhu/housematch/internal/listing"
)

// Format is a listings file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var (
	// ErrUnknownFormat is returned for encodings other than json and csv
	ErrUnknownFormat = errors.New("unknown import format")
	// ErrMissingColumn is returned when a CSV header lacks a required column
	ErrMissingColumn = errors.New("missing required column")
)

// RequiredColumns must appear in the header of a CSV file
var RequiredColumns = []string{"title", "address", "price", "bedrooms"}

//go:embed listings.schema.json
var listingsSchema []byte

const schemaResource = "listings.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaResource, bytes.NewReader(listingsSchema)); err != nil {
			schemaErr = fmt.Errorf("failed to add listings schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaResource)
	})
	return schema, schemaErr
}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath guesses the format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Decode reads listings in the given format
func Decode(r io.Reader, format Format) ([]*listing.Listing, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatCSV:
		return DecodeCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DecodeJSON reads a JSON array of listings and validates it against the
// listings schema before decoding.
func DecodeJSON(r io.Reader) ([]*listing.Listing, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("listings are not valid JSON: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("listings failed schema validation: %w", err)
	}

	var listings []*listing.Listing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	for _, l := range listings {
		if l.Amenities == nil {
			l.Amenities = []string{}
		}
	}
	return listings, nil
}

// DecodeCSV reads listings from a CSV file with a header row. Column names
// are matched case-insensitively; numbers are parsed leniently and fall back
// to zero. Amenities are separated by ';' or '|'.
func DecodeCSV(r io.Reader) ([]*listing.Listing, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []*listing.Listing{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	listings := []*listing.Listing{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		l := &listing.Listing{
			Title:        field("title"),
			Description:  field("description"),
			Address:      field("address"),
			Price:        parseFloat(field("price")),
			Bedrooms:     parseInt(field("bedrooms")),
			Bathrooms:    parseFloat(field("bathrooms")),
			PropertyType: field("property_type"),
			Amenities:    splitAmenities(field("amenities")),
			ContactEmail: field("contact_email"),
			ContactPhone: field("contact_phone"),
		}
		if lat, lng := field("latitude"), field("longitude"); lat != "" && lng != "" {
			l.Latitude = listing.Float(parseFloat(lat))
			l.Longitude = listing.Float(parseFloat(lng))
		}
		if sqft := field("square_feet"); sqft != "" {
			v := parseInt(sqft)
			l.SquareFeet = &v
		}
		if date := field("available_date"); date != "" {
			l.AvailableAt = parseDate(date)
		}
		listings = append(listings, l)
	}

	return listings, nil
}

var numberCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// parseFloat parses "$1,250.50" style numbers, returning 0 when unparseable
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(numberCleaner.Replace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseInt parses a whole number, truncating decimals like "2.0"
func parseInt(s string) int {
	return int(parseFloat(s))
}

// parseDate accepts "2006-01-02" or RFC 3339, returning nil otherwise
func parseDate(s string) *time.Time {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func splitAmenities(s string) []string {
	amenities := []string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' }) {
		if part = strings.TrimSpace(part); part != "" {
			amenities = append(amenities, part)
		}
	}
	return amenities
}
