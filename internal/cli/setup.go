package cli

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/vijay-prabhu/housematch/internal/config"
	"github.com/vijay-prabhu/housematch/internal/database"
	"github.com/vijay-prabhu/housematch/internal/logging"
	"github.com/vijay-prabhu/housematch/internal/match"
	"github.com/vijay-prabhu/housematch/internal/textnorm"
)

// loadConfig reads the config file, falling back to defaults when it does
// not exist, and installs the configured logger as the default.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}

	logger, err := logging.New(logging.Config{
		Writer:  os.Stderr,
		Level:   level,
		Format:  cfg.Log.Format,
		NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// openDB opens the listing store named by cfg
func openDB(cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetGeohashPrecision(cfg.Import.GeohashPrecision)
	return db, nil
}

// campus returns the configured proximity reference point
func campus(cfg *config.Config) match.Campus {
	return match.Campus{
		Name:           cfg.Campus.Name,
		Latitude:       cfg.Campus.Latitude,
		Longitude:      cfg.Campus.Longitude,
		MilesPerDegree: cfg.Campus.MilesPerDegree,
	}
}

// newMatcher builds the text normalizer and matcher described by cfg. The
// caller must Release the matcher.
func newMatcher(cfg *config.Config, logger *slog.Logger) (*match.Matcher, error) {
	backend, err := textnorm.ParseBackend(cfg.Normalizer.Backend)
	if err != nil {
		return nil, err
	}

	normOpts := []textnorm.Option{
		textnorm.WithBackend(backend),
		textnorm.WithLogger(logger),
	}
	if cfg.Normalizer.StopwordsPath != "" {
		normOpts = append(normOpts, textnorm.WithStopwordsFile(cfg.Normalizer.StopwordsPath))
	}
	normalizer := textnorm.New(normOpts...)

	opts := []match.Option{
		match.WithCampus(campus(cfg), cfg.Campus.Keywords),
		match.WithParallelThreshold(cfg.Matching.ParallelThreshold),
		match.WithLogger(logger),
	}
	if cfg.Matching.Parallel {
		opts = append(opts, match.WithPoolSize(cfg.Matching.PoolSize))
	}

	m, err := match.New(normalizer, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create matcher: %w", err)
	}
	return m, nil
}
