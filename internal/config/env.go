package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by FromEnv.
const (
	EnvStore       = "ETERNAL_QUEST_STORE"
	EnvTracker     = "ETERNAL_QUEST_TRACKER"
	EnvXPPerLevel  = "ETERNAL_QUEST_XP_PER_LEVEL"
	EnvLogLevel    = "ETERNAL_QUEST_LOG_LEVEL"
	EnvDatabaseURL = "DATABASE_URL"
)

// FromEnv creates a configuration from environment variables. Unset variables leave their field empty.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Store:       os.Getenv(EnvStore),
		Tracker:     os.Getenv(EnvTracker),
		LogLevel:    os.Getenv(EnvLogLevel),
		DatabaseURL: os.Getenv(EnvDatabaseURL),
	}

	if xpStr := os.Getenv(EnvXPPerLevel); xpStr != "" {
		xp, err := strconv.Atoi(xpStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", EnvXPPerLevel, err)
		}
		cfg.XPPerLevel = xp
	}

	return cfg, nil
}
