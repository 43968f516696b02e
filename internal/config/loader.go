package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override the config file
const (
	EnvConfigPath = "HOUSEMATCH_CONFIG"
	EnvDBPath     = "HOUSEMATCH_DB_PATH"
	EnvLogLevel   = "HOUSEMATCH_LOG_LEVEL"
)

// ErrNotFound is returned by Load when the config file does not exist
var ErrNotFound = errors.New("config file not found")

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run 'housematch config init' to create)", ErrNotFound, expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Parse TOML
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg.finish()
}

// LoadOrDefault loads the config file, or the defaults if it does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return Default().finish()
	}
	return cfg, err
}

func (c *Config) finish() (*Config, error) {
	c.applyEnv()

	// Expand paths in config
	if err := c.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	c.Normalizer.StopwordsPath, err = expandPath(c.Normalizer.StopwordsPath)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Matching validation
	if c.Matching.TopN < 0 {
		errs = append(errs, errors.New("matching.top_n must not be negative"))
	}
	if c.Matching.PoolSize < 0 {
		errs = append(errs, errors.New("matching.pool_size must not be negative"))
	}
	if c.Matching.ParallelThreshold < 1 {
		errs = append(errs, errors.New("matching.parallel_threshold must be at least 1"))
	}

	// Normalizer validation
	validBackends := map[string]bool{"full": true, "basic": true}
	if !validBackends[c.Normalizer.Backend] {
		errs = append(errs, fmt.Errorf("normalizer.backend must be 'full' or 'basic', got '%s'", c.Normalizer.Backend))
	}

	// Campus validation
	if c.Campus.Name == "" {
		errs = append(errs, errors.New("campus.name is required"))
	}
	if c.Campus.Latitude < -90 || c.Campus.Latitude > 90 {
		errs = append(errs, errors.New("campus.latitude must be between -90 and 90"))
	}
	if c.Campus.Longitude < -180 || c.Campus.Longitude > 180 {
		errs = append(errs, errors.New("campus.longitude must be between -180 and 180"))
	}
	if c.Campus.MilesPerDegree <= 0 {
		errs = append(errs, errors.New("campus.miles_per_degree must be positive"))
	}

	// Import validation
	if c.Import.MaxDistanceMiles < 0 {
		errs = append(errs, errors.New("import.max_distance_miles must not be negative"))
	}
	if c.Import.GeohashPrecision < 1 || c.Import.GeohashPrecision > 12 {
		errs = append(errs, errors.New("import.geohash_precision must be between 1 and 12"))
	}

	// Log validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got '%s'", c.Log.Level))
	}
	validFormats := map[string]bool{"color": true, "text": true, "json": true}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Errorf("log.format must be color, text or json, got '%s'", c.Log.Format))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates the directory holding the database
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
