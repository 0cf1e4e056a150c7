// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// PostgresStore is the store value that selects the database named by DatabaseURL.
const PostgresStore = "postgres"

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	Store       string `json:"store,omitempty" yaml:"store,omitempty"`               // Goal store: file path, sqlite:<path>, postgres URL or "postgres"
	Tracker     string `json:"tracker,omitempty" yaml:"tracker,omitempty"`           // Tracker name inside a shared database
	XPPerLevel  int    `json:"xp_per_level,omitempty" yaml:"xp_per_level,omitempty"` // Experience per level step
	LogLevel    string `json:"log_level,omitempty" yaml:"log_level,omitempty"`       // debug, info, warn or error
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Store:      "goals.txt",
		Tracker:    "default",
		XPPerLevel: 100,
		LogLevel:   "info",
	}
}

// LoadConfig loads configuration from a JSON file, or YAML when the extension is .yaml or .yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.XPPerLevel < 0 {
		return fmt.Errorf("config error: 'xp_per_level' must be non-negative")
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
		}
	}

	if strings.EqualFold(c.Store, PostgresStore) && c.DatabaseURL == "" {
		return fmt.Errorf("config error: store 'postgres' needs 'database_url' or DATABASE_URL")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer the config file over the environment and built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.Tracker == "" {
		result.Tracker = defaults.Tracker
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.XPPerLevel == 0 {
		result.XPPerLevel = defaults.XPPerLevel
	}

	return result
}

// StoreDSN returns the destination handed to the store layer. The bare value
// "postgres" resolves to DatabaseURL.
func (c *Config) StoreDSN() string {
	if strings.EqualFold(c.Store, PostgresStore) {
		return c.DatabaseURL
	}
	return c.Store
}

// Level returns the parsed log level, info when unset or invalid.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
