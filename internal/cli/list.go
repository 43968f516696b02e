package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/housematch/internal/database"
	"github.com/vijay-prabhu/housematch/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored listings",
	Long: `List stored housing listings with optional filters, oldest first.

Examples:
  housematch list                          # List all listings
  housematch list --type=apartment         # Only apartments
  housematch list --max-price=1500         # At or below $1,500/month
  housematch list --min-bedrooms=2 -o json # Output as JSON`,
	RunE: runList,
}

var (
	listType        string
	listMaxPrice    float64
	listMinBedrooms int
	listSearch      string
	listLimit       int
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listType, "type", "", "Filter by property type (apartment, house, room)")
	listCmd.Flags().Float64Var(&listMaxPrice, "max-price", 0, "Maximum monthly rent")
	listCmd.Flags().IntVar(&listMinBedrooms, "min-bedrooms", 0, "Minimum number of bedrooms")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Match text in title, address or description")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")
}

func runList(cmd *cobra.Command, args []string) error {
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

	// Build query options
	opts := database.ListOptions{
		Limit: listLimit,
	}
	if listType != "" {
		opts.PropertyType = &listType
	}
	if cmd.Flags().Changed("max-price") {
		opts.MaxPrice = &listMaxPrice
	}
	if cmd.Flags().Changed("min-bedrooms") {
		opts.MinBedrooms = &listMinBedrooms
	}
	if listSearch != "" {
		opts.Search = &listSearch
	}

	listings, err := db.ListListings(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list listings: %w", err)
	}

	return output.Output(outputFmt, listings)
}
