package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/housematch/internal/output"
)

var parseCmd = &cobra.Command{
	Use:   "parse <query...>",
	Short: "Show the preferences extracted from a request",
	Long: `Show the structured preferences housematch reads from a request:
bedrooms, bathrooms, price bounds, property type, amenities, campus
proximity and the normalized keywords.

Examples:
  housematch parse 2-3 bedroom apartment between 1000 and 1500
  housematch parse "studio near campus" -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := newMatcher(cfg, logger)
	if err != nil {
		return err
	}
	defer m.Release()

	return output.Output(outputFmt, m.Extract(strings.Join(args, " ")))
}
