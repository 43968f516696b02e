package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/housematch/internal/database"
	"github.com/vijay-prabhu/housematch/internal/listing"
	"github.com/vijay-prabhu/housematch/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export listings to CSV or JSON",
	Long: `Export stored listings to a file.

Both formats can be read back with 'housematch import'.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of listing objects

Examples:
  housematch export --format=csv > listings.csv
  housematch export --format=json > listings.json`,
	RunE: runExport,
}

var exportFormat string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	listings, err := db.ListListings(ctx, database.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list listings: %w", err)
	}

	switch exportFormat {
	case "csv":
		return exportCSV(os.Stdout, listings)
	case "json":
		if err := output.JSONTo(os.Stdout, listings); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}
}

var exportHeader = []string{
	"id", "title", "description", "address", "price", "bedrooms", "bathrooms",
	"property_type", "amenities", "latitude", "longitude", "square_feet",
	"contact_email", "contact_phone", "available_date", "created_at",
}

func exportCSV(out io.Writer, listings []listing.Listing) error {
	w := csv.NewWriter(out)

	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, l := range listings {
		record := []string{
			l.ID,
			l.Title,
			l.Description,
			l.Address,
			strconv.FormatFloat(l.Price, 'f', -1, 64),
			strconv.Itoa(l.Bedrooms),
			strconv.FormatFloat(l.Bathrooms, 'f', -1, 64),
			l.PropertyType,
			strings.Join(l.Amenities, ";"),
			optionalFloat(l.Latitude),
			optionalFloat(l.Longitude),
			"",
			l.ContactEmail,
			l.ContactPhone,
			"",
			"",
		}
		if l.SquareFeet != nil {
			record[11] = strconv.Itoa(*l.SquareFeet)
		}
		if l.AvailableAt != nil {
			record[14] = l.AvailableAt.Format(time.DateOnly)
		}
		if !l.CreatedAt.IsZero() {
			record[15] = l.CreatedAt.Format(time.RFC3339)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
