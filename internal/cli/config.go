package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/housematch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := filepath.Dir(configPath)

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file already exists at %s\n", configPath)
		fmt.Println("Use 'housematch config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Set [campus] to the school your renters care about")
	fmt.Println("  2. Run 'housematch import listings.json' to load listings")
	fmt.Println("  3. Run 'housematch match 2 bedroom apartment near campus'")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found, using defaults. Run 'housematch config init' to create one.")
			fmt.Println()
			return toml.NewEncoder(os.Stdout).Encode(config.Default())
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# housematch configuration

[database]
path = "~/.local/share/housematch/housematch.db"

[matching]
top_n = 5                 # matches returned when the caller does not ask for a number
parallel = true           # score large batches on a worker pool
pool_size = 0             # 0 = half the CPUs
parallel_threshold = 64   # smallest batch scored on the pool

[normalizer]
backend = "full"          # "full" (stemming, full stop word list) or "basic"
# stopwords_path = "~/.config/housematch/stopwords.txt"

[campus]
name = "UCR"
latitude = 33.9737
longitude = -117.3281
miles_per_degree = 69
keywords = [
    "ucr",
    "campus",
    "university",
    "riverside",
    "college",
    "school",
    "near ucr",
    "close to ucr",
    "walking distance"
]

[import]
max_distance_miles = 2.0  # 0 disables the radius filter
annotate_distance = true  # append "Located X miles from campus." to descriptions
geohash_precision = 8     # cell size used to spot reposted listings

[import.filter]
domain_allowlist = []     # contact domains that are never rejected
domain_blocklist = []     # e.g. "tempmail.com", "scammer@"
phrase_blocklist = [
    "wire transfer",
    "western union",
    "moneygram",
    "gift card",
    "cashier's check",
    "out of the country"
]

[log]
level = "info"            # debug, info, warn, error
format = "color"          # color, text, json

[mcp]
enabled = true
transport = "stdio"
`
