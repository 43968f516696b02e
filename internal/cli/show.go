package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/housematch/internal/database"
	"github.com/vijay-prabhu/housematch/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <id|title>",
	Short: "Show listing details",
	Long: `Show detailed information about a specific listing.

The identifier can be:
  - Listing ID
  - Part of the title or address (first match is shown)

Examples:
  housematch show 3f2a9c1e-5b7d-4e11-9a0c-2d4b6e8f1a3c
  housematch show "University Towers"`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	identifier := args[0]

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Try by ID first, then by search
	l, err := db.GetListing(ctx, identifier)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if l == nil {
		results, err := db.ListListings(ctx, database.ListOptions{Search: &identifier, Limit: 1})
		if err != nil {
			return fmt.Errorf("search error: %w", err)
		}
		if len(results) > 0 {
			l = &results[0]
		}
	}

	if l == nil {
		return fmt.Errorf("listing not found: %s", identifier)
	}

	return output.Output(outputFmt, l)
}
