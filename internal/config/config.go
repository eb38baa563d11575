// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds everything tagdir reads from the environment.
type Config struct {
	// Tag store ("memory", "sqlite" or "postgres", default: "sqlite")
	Store       string
	DBPath      string
	DatabaseURL string

	// Logging. Without LogFile nothing is logged: the terminal belongs to the UI.
	LogLevel      string
	LogFormat     string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	// Browsing
	RequestTimeout time.Duration // 0 = no limit
	ShowHidden     bool
	SearchHidden   bool
	SearchLimit    int
	StartPath      string
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Store:          envOr("TAGDIR_STORE", StoreSQLite),
		DBPath:         envOr("TAGDIR_DB_PATH", defaultDBPath()),
		DatabaseURL:    envOr("TAGDIR_DATABASE_URL", ""),
		LogLevel:       envOr("TAGDIR_LOG_LEVEL", "info"),
		LogFormat:      envOr("TAGDIR_LOG_FORMAT", "json"),
		LogFile:        envOr("TAGDIR_LOG_FILE", ""),
		LogMaxSizeMB:   envInt("TAGDIR_LOG_MAX_SIZE_MB", 128),
		LogMaxBackups:  envInt("TAGDIR_LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays:  envInt("TAGDIR_LOG_MAX_AGE_DAYS", 16),
		RequestTimeout: envDuration("TAGDIR_REQUEST_TIMEOUT", 30*time.Second),
		ShowHidden:     envBool("TAGDIR_SHOW_HIDDEN", false),
		SearchHidden:   envBool("TAGDIR_SEARCH_HIDDEN", false),
		SearchLimit:    envInt("TAGDIR_SEARCH_LIMIT", 2000),
		StartPath:      envOr("TAGDIR_START_PATH", ""),
	}

	switch cfg.Store {
	case StoreMemory:
	case StoreSQLite:
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("TAGDIR_DB_PATH is required for the sqlite store")
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("TAGDIR_DATABASE_URL is required for the postgres store")
		}
	default:
		return nil, fmt.Errorf("unknown TAGDIR_STORE %q (want memory, sqlite or postgres)", cfg.Store)
	}
	if cfg.RequestTimeout < 0 {
		return nil, fmt.Errorf("TAGDIR_REQUEST_TIMEOUT must not be negative")
	}

	return cfg, nil
}

// defaultDBPath is tags.db in the user config directory, or the working
// directory when there is none.
func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "tags.db"
	}
	return filepath.Join(dir, "tagdir", "tags.db")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

// envDuration accepts Go durations ("45s") and bare seconds ("45").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
