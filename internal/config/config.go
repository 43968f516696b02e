package config

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig   `toml:"database"`
	Matching   MatchingConfig   `toml:"matching"`
	Normalizer NormalizerConfig `toml:"normalizer"`
	Campus     CampusConfig     `toml:"campus"`
	Import     ImportConfig     `toml:"import"`
	Log        LogConfig        `toml:"log"`
	MCP        MCPConfig        `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// MatchingConfig contains ranking settings
type MatchingConfig struct {
	TopN              int  `toml:"top_n"`
	Parallel          bool `toml:"parallel"`
	PoolSize          int  `toml:"pool_size"` // 0 = half the CPUs
	ParallelThreshold int  `toml:"parallel_threshold"`
}

// NormalizerConfig selects the text normalization backend
type NormalizerConfig struct {
	Backend       string `toml:"backend"`
	StopwordsPath string `toml:"stopwords_path"`
}

// CampusConfig is the proximity reference point
type CampusConfig struct {
	Name           string   `toml:"name"`
	Latitude       float64  `toml:"latitude"`
	Longitude      float64  `toml:"longitude"`
	MilesPerDegree float64  `toml:"miles_per_degree"`
	Keywords       []string `toml:"keywords"`
}

// ImportConfig contains listing import rules
type ImportConfig struct {
	MaxDistanceMiles float64      `toml:"max_distance_miles"` // 0 disables the radius filter
	AnnotateDistance bool         `toml:"annotate_distance"`
	GeohashPrecision uint         `toml:"geohash_precision"`
	Filter           FilterConfig `toml:"filter"`
}

// FilterConfig lists contacts and phrases that mark a listing as spam
type FilterConfig struct {
	DomainAllowlist []string `toml:"domain_allowlist"`
	DomainBlocklist []string `toml:"domain_blocklist"`
	PhraseBlocklist []string `toml:"phrase_blocklist"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/housematch/housematch.db",
		},
		Matching: MatchingConfig{
			TopN:              5,
			Parallel:          true,
			PoolSize:          0,
			ParallelThreshold: 64,
		},
		Normalizer: NormalizerConfig{
			Backend: "full",
		},
		Campus: CampusConfig{
			Name:           "UCR",
			Latitude:       33.9737,
			Longitude:      -117.3281,
			MilesPerDegree: 69,
			Keywords: []string{
				"ucr",
				"campus",
				"university",
				"riverside",
				"college",
				"school",
				"near ucr",
				"close to ucr",
				"walking distance",
			},
		},
		Import: ImportConfig{
			MaxDistanceMiles: 2,
			AnnotateDistance: true,
			GeohashPrecision: 8,
			Filter: FilterConfig{
				DomainAllowlist: []string{},
				DomainBlocklist: []string{},
				PhraseBlocklist: []string{
					"wire transfer",
					"western union",
					"moneygram",
					"gift card",
					"cashier's check",
					"out of the country",
				},
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "color",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
