// Package importer loads housing listings from JSON or CSV files into the
// listing store. Listings without a title or address, with a non-positive
// price, flagged as spam, already stored, or outside the campus radius are
// skipped.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/vijay-prabhu/housematch/internal/filter"
	"github.com/vijay-prabhu/housematch/internal/listing"
	"github.com/vijay-prabhu/housematch/internal/match"
)

// EarthRadiusMiles is the mean earth radius used for great-circle distances
const EarthRadiusMiles = 3959.0

// Store is the subset of the listing store the importer needs
type Store interface {
	FindDuplicate(ctx context.Context, l *listing.Listing) (*listing.Listing, error)
	CreateListing(ctx context.Context, l *listing.Listing) error
}

// Summary counts the outcome of an import
type Summary struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	TooFar     int `json:"too_far"`
	Rejected   int `json:"rejected"`
	Skipped    int `json:"skipped"`
}

// Total returns the number of listings read
func (s Summary) Total() int {
	return s.Added + s.Duplicates + s.TooFar + s.Rejected + s.Skipped
}

// Importer validates and stores listings
type Importer struct {
	store       Store
	filter      *filter.Filter
	campus      match.Campus
	maxDistance float64
	annotate    bool
	dryRun      bool
	logger      *slog.Logger
}

// Option configures an Importer
type Option func(*Importer)

// WithCampus sets the reference point for the radius filter and annotations
func WithCampus(c match.Campus) Option {
	return func(i *Importer) {
		i.campus = c
	}
}

// WithMaxDistance skips listings farther than miles from the campus. Zero
// disables the filter.
func WithMaxDistance(miles float64) Option {
	return func(i *Importer) {
		i.maxDistance = miles
	}
}

// WithDistanceAnnotation appends the campus distance to descriptions
func WithDistanceAnnotation(on bool) Option {
	return func(i *Importer) {
		i.annotate = on
	}
}

// WithFilter rejects listings the spam filter does not include
func WithFilter(f *filter.Filter) Option {
	return func(i *Importer) {
		i.filter = f
	}
}

// WithDryRun checks listings without storing them
func WithDryRun(on bool) Option {
	return func(i *Importer) {
		i.dryRun = on
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(i *Importer) {
		i.logger = l
	}
}

// New creates an Importer writing to store
func New(store Store, opts ...Option) *Importer {
	i := &Importer{
		store:  store,
		campus: match.DefaultCampus,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import stores listings in order. A listing that duplicates one added
// earlier in the same batch is counted as a duplicate. In dry-run mode
// nothing is written and in-batch duplicates are not detected.
func (i *Importer) Import(ctx context.Context, listings []*listing.Listing) (*Summary, error) {
	summary := &Summary{}

	for _, l := range listings {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		l.Title = strings.TrimSpace(l.Title)
		l.Address = strings.TrimSpace(l.Address)
		if l.Title == "" || l.Address == "" || l.Price <= 0 {
			i.logger.Debug("skipping incomplete listing", "title", l.Title, "address", l.Address, "price", l.Price)
			summary.Skipped++
			continue
		}

		if i.filter != nil {
			if result := i.filter.Apply(l); !result.Include {
				i.logger.Debug("rejecting listing", "title", l.Title, "layer", result.Layer, "reason", result.Reason)
				summary.Rejected++
				continue
			}
		}

		if l.HasCoordinates() {
			miles := i.Distance(*l.Latitude, *l.Longitude)
			if i.maxDistance > 0 && miles > i.maxDistance {
				i.logger.Debug("skipping distant listing", "title", l.Title, "miles", math.Round(miles*10)/10)
				summary.TooFar++
				continue
			}
			if i.annotate {
				l.Description = annotate(l.Description, miles, i.campus.Name)
			}
		}

		dup, err := i.store.FindDuplicate(ctx, l)
		if err != nil {
			return summary, fmt.Errorf("failed to check duplicate for %q: %w", l.Title, err)
		}
		if dup != nil {
			i.logger.Debug("skipping duplicate listing", "title", l.Title, "existing", dup.ID)
			summary.Duplicates++
			continue
		}

		if l.Amenities == nil {
			l.Amenities = []string{}
		}

		if !i.dryRun {
			if err := i.store.CreateListing(ctx, l); err != nil {
				return summary, fmt.Errorf("failed to store %q: %w", l.Title, err)
			}
		}
		summary.Added++
	}

	i.logger.Info("import finished",
		"added", summary.Added,
		"duplicates", summary.Duplicates,
		"too_far", summary.TooFar,
		"rejected", summary.Rejected,
		"skipped", summary.Skipped,
		"dry_run", i.dryRun,
	)
	return summary, nil
}

// Distance returns the great-circle distance in miles from the campus
func (i *Importer) Distance(lat, lng float64) float64 {
	return Haversine(i.campus.Latitude, i.campus.Longitude, lat, lng)
}

// Haversine returns the great-circle distance in miles between two points
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return EarthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func annotate(description string, miles float64, campus string) string {
	note := fmt.Sprintf("Located %.1f miles from %s campus.", miles, campus)
	description = strings.TrimSpace(description)
	if strings.Contains(description, note) {
		return description
	}
	if description == "" {
		return note
	}
	return description + " " + note
}
