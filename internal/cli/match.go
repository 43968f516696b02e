package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/housematch/internal/database"
	"github.com/vijay-prabhu/housematch/internal/importer"
	"github.com/vijay-prabhu/housematch/internal/listing"
	"github.com/vijay-prabhu/housematch/internal/match"
	"github.com/vijay-prabhu/housematch/internal/output"
	"github.com/vijay-prabhu/housematch/internal/preference"
)

var matchCmd = &cobra.Command{
	Use:   "match <query...>",
	Short: "Find the listings that best match a request",
	Long: `Rank listings against a plain English request and explain the result.

Listings come from the local store unless --listings names a JSON or CSV file.

Examples:
  housematch match 2 bedroom apartment under 1500 near campus
  housematch match "studio with parking" --top 3
  housematch match "pet friendly house" --listings listings.json -o text
  housematch match "quiet room" -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

var (
	matchTop      int
	matchListings string
)

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().IntVar(&matchTop, "top", -1, "Number of matches to return (default from config)")
	matchCmd.Flags().StringVar(&matchListings, "listings", "", "Rank listings from a JSON or CSV file instead of the store")
}

// matchResult is the JSON form of a match run
type matchResult struct {
	Query       string              `json:"query"`
	Preferences preference.Record   `json:"preferences"`
	Matches     []match.ScoredMatch `json:"matches"`
	Response    string              `json:"response"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	topN := cfg.Matching.TopN
	if cmd.Flags().Changed("top") {
		topN = matchTop
	}

	var listings []listing.Listing
	if matchListings != "" {
		listings, err = readListingsFile(matchListings)
		if err != nil {
			return err
		}
	} else {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		listings, err = db.ListListings(ctx, database.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list listings: %w", err)
		}
	}

	m, err := newMatcher(cfg, logger)
	if err != nil {
		return err
	}
	defer m.Release()

	matches, err := m.FindMatches(query, listings, topN)
	if err != nil {
		return err
	}
	response := m.GenerateResponse(query, matches)

	switch outputFmt {
	case output.FormatText:
		return output.Output(outputFmt, response)
	case output.FormatJSON:
		return output.Output(outputFmt, matchResult{
			Query:       query,
			Preferences: m.Extract(query),
			Matches:     matches,
			Response:    response,
		})
	default:
		if err := output.Output(outputFmt, matches); err != nil {
			return err
		}
		if len(matches) > 0 {
			t := NewTerminal()
			best := matches[0]
			t.Printf("\nBest match: %s (score %s)\n",
				best.Listing.Title, t.Color(ScoreColor(best.Score), fmt.Sprint(best.Score)))
		}
		return nil
	}
}

// readListingsFile decodes a listings file, picking the format from its
// extension and defaulting to JSON.
func readListingsFile(path string) ([]listing.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listings: %w", err)
	}
	defer f.Close()

	format, err := importer.FormatFromPath(path)
	if err != nil {
		format = importer.FormatJSON
	}

	decoded, err := importer.Decode(f, format)
	if err != nil {
		return nil, err
	}

	listings := make([]listing.Listing, len(decoded))
	for i, l := range decoded {
		listings[i] = *l
	}
	return listings, nil
}
