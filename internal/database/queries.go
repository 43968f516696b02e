package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"

	"github.com/vijay-prabhu/housematch/internal/listing"
)

const listingColumns = `
	id, title, description, address, price, bedrooms, bathrooms,
	is_multi_unit, min_bedrooms, max_bedrooms, min_bathrooms, max_bathrooms,
	property_type, amenities, latitude, longitude, square_feet,
	contact_email, contact_phone, available_date, created_at, updated_at`

// CreateListing inserts a new listing
func (db *DB) CreateListing(ctx context.Context, l *listing.Listing) error {
	return createListing(ctx, db, l, db.geohashPrecision)
}

// CreateListings inserts listings in a single transaction
func (db *DB) CreateListings(ctx context.Context, ls []*listing.Listing) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, l := range ls {
			if err := createListing(ctx, tx, l, db.geohashPrecision); err != nil {
				return fmt.Errorf("failed to insert %q: %w", l.Title, err)
			}
		}
		return nil
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func createListing(ctx context.Context, ex execer, l *listing.Listing, precision uint) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	amenities, err := encodeAmenities(l.Amenities)
	if err != nil {
		return err
	}

	_, err = ex.ExecContext(ctx, `
		INSERT INTO listings (
			id, title, description, address, normalized_address, price, bedrooms, bathrooms,
			is_multi_unit, min_bedrooms, max_bedrooms, min_bathrooms, max_bathrooms,
			property_type, amenities, latitude, longitude, geohash, square_feet,
			contact_email, contact_phone, available_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		l.ID, l.Title, l.Description, l.Address, listing.NormalizeAddress(l.Address),
		l.Price, l.Bedrooms, l.Bathrooms,
		l.IsMultiUnit, l.MinBedrooms, l.MaxBedrooms, l.MinBathrooms, l.MaxBathrooms,
		l.PropertyType, amenities, NullFloat64(l.Latitude), NullFloat64(l.Longitude),
		NullString(cell(l, precision)), NullInt64(l.SquareFeet),
		NullString(l.ContactEmail), NullString(l.ContactPhone), NullTime(l.AvailableAt),
		l.CreatedAt, l.UpdatedAt,
	)
	return err
}

// GetListing retrieves a listing by ID
func (db *DB) GetListing(ctx context.Context, id string) (*listing.Listing, error) {
	row := db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)

	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListListings retrieves listings with optional filters, oldest first
func (db *DB) ListListings(ctx context.Context, opts ListOptions) ([]listing.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE 1=1`
	args := []interface{}{}

	if opts.PropertyType != nil {
		query += " AND LOWER(property_type) = LOWER(?)"
		args = append(args, *opts.PropertyType)
	}
	if opts.MaxPrice != nil {
		query += " AND price <= ?"
		args = append(args, *opts.MaxPrice)
	}
	if opts.MinBedrooms != nil {
		query += " AND (bedrooms >= ? OR (is_multi_unit = 1 AND max_bedrooms >= ?))"
		args = append(args, *opts.MinBedrooms, *opts.MinBedrooms)
	}
	if opts.Search != nil {
		query += " AND (LOWER(title) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))"
		pattern := "%" + *opts.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query += " ORDER BY created_at, rowid"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []listing.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}

	return listings, rows.Err()
}

// FindDuplicate returns a stored listing that l duplicates: same bedroom
// count and either the same normalized address or the same geohash cell.
func (db *DB) FindDuplicate(ctx context.Context, l *listing.Listing) (*listing.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
		WHERE bedrooms = ? AND (normalized_address = ?`
	args := []interface{}{l.Bedrooms, listing.NormalizeAddress(l.Address)}

	if h := cell(l, db.geohashPrecision); h != "" {
		query += " OR geohash = ?"
		args = append(args, h)
	}
	query += ") ORDER BY created_at LIMIT 1"

	dup, err := scanListing(db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dup, nil
}

// DeleteListing deletes a listing by ID
func (db *DB) DeleteListing(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("listing not found: %s", id)
	}
	return nil
}

// GetStats returns aggregate statistics over all listings
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByPropertyType: make(map[string]int)}

	err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(is_multi_unit), 0),
			COALESCE(SUM(CASE WHEN latitude IS NOT NULL AND longitude IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(price), 0),
			COALESCE(MIN(price), 0),
			COALESCE(MAX(price), 0),
			COALESCE(AVG(bedrooms), 0)
		FROM listings
	`).Scan(
		&stats.TotalListings, &stats.MultiUnit, &stats.WithCoordinates,
		&stats.AvgPrice, &stats.MinPrice, &stats.MaxPrice, &stats.AvgBedrooms,
	)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT property_type, COUNT(*) FROM listings GROUP BY property_type ORDER BY property_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var propertyType string
		var count int
		if err := rows.Scan(&propertyType, &count); err != nil {
			return nil, err
		}
		if propertyType == "" {
			propertyType = "unknown"
		}
		stats.ByPropertyType[propertyType] += count
	}

	return stats, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (*listing.Listing, error) {
	l := &listing.Listing{}
	var amenities string
	var lat, lng sql.NullFloat64
	var squareFeet sql.NullInt64
	var email, phone sql.NullString
	var available sql.NullTime

	err := s.Scan(
		&l.ID, &l.Title, &l.Description, &l.Address, &l.Price, &l.Bedrooms, &l.Bathrooms,
		&l.IsMultiUnit, &l.MinBedrooms, &l.MaxBedrooms, &l.MinBathrooms, &l.MaxBathrooms,
		&l.PropertyType, &amenities, &lat, &lng, &squareFeet,
		&email, &phone, &available, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(amenities), &l.Amenities); err != nil {
		return nil, fmt.Errorf("invalid amenities for listing %s: %w", l.ID, err)
	}
	if l.Amenities == nil {
		l.Amenities = []string{}
	}

	l.Latitude = Float64Ptr(lat)
	l.Longitude = Float64Ptr(lng)
	l.SquareFeet = IntPtr(squareFeet)
	l.ContactEmail = email.String
	l.ContactPhone = phone.String
	l.AvailableAt = TimePtr(available)
	return l, nil
}

func encodeAmenities(amenities []string) (string, error) {
	if amenities == nil {
		amenities = []string{}
	}
	data, err := json.Marshal(amenities)
	if err != nil {
		return "", fmt.Errorf("failed to encode amenities: %w", err)
	}
	return string(data), nil
}

// cell returns the geohash of the listing, or "" without coordinates
func cell(l *listing.Listing, precision uint) string {
	if !l.HasCoordinates() {
		return ""
	}
	return geohash.EncodeWithPrecision(*l.Latitude, *l.Longitude, precision)
}
