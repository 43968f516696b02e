package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Matching.TopN != 5 {
		t.Errorf("expected TopN=5, got %d", cfg.Matching.TopN)
	}

	if cfg.Normalizer.Backend != "full" {
		t.Errorf("expected Backend=full, got %s", cfg.Normalizer.Backend)
	}

	if cfg.Campus.Name != "UCR" {
		t.Errorf("expected campus UCR, got %s", cfg.Campus.Name)
	}

	if cfg.Campus.MilesPerDegree != 69 {
		t.Errorf("expected MilesPerDegree=69, got %v", cfg.Campus.MilesPerDegree)
	}

	if cfg.Import.MaxDistanceMiles != 2 {
		t.Errorf("expected MaxDistanceMiles=2, got %v", cfg.Import.MaxDistanceMiles)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "missing database path",
			modify: func(c *Config) {
				c.Database.Path = ""
			},
			wantErr: true,
		},
		{
			name: "negative top_n",
			modify: func(c *Config) {
				c.Matching.TopN = -1
			},
			wantErr: true,
		},
		{
			name: "zero top_n is allowed",
			modify: func(c *Config) {
				c.Matching.TopN = 0
			},
			wantErr: false,
		},
		{
			name: "negative pool size",
			modify: func(c *Config) {
				c.Matching.PoolSize = -2
			},
			wantErr: true,
		},
		{
			name: "invalid normalizer backend",
			modify: func(c *Config) {
				c.Normalizer.Backend = "nltk"
			},
			wantErr: true,
		},
		{
			name: "basic normalizer backend",
			modify: func(c *Config) {
				c.Normalizer.Backend = "basic"
			},
			wantErr: false,
		},
		{
			name: "latitude out of range",
			modify: func(c *Config) {
				c.Campus.Latitude = 91
			},
			wantErr: true,
		},
		{
			name: "zero miles per degree",
			modify: func(c *Config) {
				c.Campus.MilesPerDegree = 0
			},
			wantErr: true,
		},
		{
			name: "geohash precision too large",
			modify: func(c *Config) {
				c.Import.GeohashPrecision = 13
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Log.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	data := `
[database]
path = "/tmp/housematch-test.db"

[matching]
top_n = 10

[campus]
name = "Main Campus"
latitude = 37.4275
longitude = -122.1697
keywords = ["stanford"]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Matching.TopN != 10 {
		t.Errorf("expected TopN=10, got %d", cfg.Matching.TopN)
	}
	if cfg.Campus.Name != "Main Campus" {
		t.Errorf("expected campus name override, got %s", cfg.Campus.Name)
	}
	if len(cfg.Campus.Keywords) != 1 || cfg.Campus.Keywords[0] != "stanford" {
		t.Errorf("expected keywords override, got %v", cfg.Campus.Keywords)
	}
	// Unset sections keep their defaults
	if cfg.Campus.MilesPerDegree != 69 {
		t.Errorf("expected default MilesPerDegree, got %v", cfg.Campus.MilesPerDegree)
	}
	if cfg.Normalizer.Backend != "full" {
		t.Errorf("expected default backend, got %s", cfg.Normalizer.Backend)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[normalizer]\nbackend = \"spacy\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid backend")
	}
}

func TestLoad_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	_, err := Load(path)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.Matching.TopN != 5 {
		t.Errorf("expected default TopN, got %d", cfg.Matching.TopN)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/from-env.db")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}

	if cfg.Database.Path != "/tmp/from-env.db" {
		t.Errorf("expected database path from env, got %s", cfg.Database.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level from env, got %s", cfg.Log.Level)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
