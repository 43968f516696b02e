package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/housematch/internal/filter"
	"github.com/vijay-prabhu/housematch/internal/importer"
	"github.com/vijay-prabhu/housematch/internal/output"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import listings from a JSON or CSV file",
	Long: `Import housing listings into the local store.

JSON files hold an array of listing objects. CSV files need a header row
with at least title, address, price and bedrooms columns; amenities are
separated by ';'.

Listings are skipped when they lack a title or address, have no price,
duplicate a stored listing (same address or location and bedroom count),
lie outside import.max_distance_miles of the campus, or are flagged by the
spam filter in [import.filter].

Examples:
  housematch import listings.json
  housematch import listings.csv --dry-run
  housematch import export.txt --format=csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importFormat string
	importDryRun bool
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importFormat, "format", "", "Input format (json, csv); default from the file extension")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Check listings without storing them")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	var format importer.Format
	if importFormat != "" {
		format, err = importer.ParseFormat(importFormat)
	} else {
		format, err = importer.FormatFromPath(path)
	}
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	listings, err := importer.Decode(f, format)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	imp := importer.New(db,
		importer.WithCampus(campus(cfg)),
		importer.WithFilter(filter.New(cfg.Import.Filter)),
		importer.WithMaxDistance(cfg.Import.MaxDistanceMiles),
		importer.WithDistanceAnnotation(cfg.Import.AnnotateDistance),
		importer.WithDryRun(importDryRun),
		importer.WithLogger(logger),
	)

	summary, err := imp.Import(ctx, listings)
	if err != nil {
		return err
	}

	if outputFmt == output.FormatJSON {
		return output.JSON(summary)
	}

	t := NewTerminal()
	if importDryRun {
		t.Printf("Dry run: nothing was stored.\n")
	}
	t.Printf("Read %d listing(s) from %s\n", summary.Total(), path)
	t.Printf("  Added:       %s\n", t.Color(CountColor("added", summary.Added), fmt.Sprint(summary.Added)))
	t.Printf("  Duplicates:  %s\n", t.Color(CountColor("duplicates", summary.Duplicates), fmt.Sprint(summary.Duplicates)))
	t.Printf("  Too far:     %s\n", t.Color(CountColor("too_far", summary.TooFar), fmt.Sprint(summary.TooFar)))
	t.Printf("  Rejected:    %s\n", t.Color(CountColor("rejected", summary.Rejected), fmt.Sprint(summary.Rejected)))
	t.Printf("  Skipped:     %s\n", t.Color(CountColor("skipped", summary.Skipped), fmt.Sprint(summary.Skipped)))
	return nil
}
