package config

import (
	"fmt"
	"os"
	"time"

	"github.com/abdulachik/feedfilter/internal/feed"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database holding the filter settings
	DatabasePath string

	// Logging
	LogLevel string

	// HTTP API
	HTTPAddr string

	// Feed watching
	FeedPath       string // Feed snapshot to filter (.jsonl, .json listing, .html page)
	OutputPath     string // Optional file receiving the visible posts after each pass
	WatchDebounce  time.Duration
	RescanInterval time.Duration
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath: getEnv("DATABASE_PATH", "data/feedfilter.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		FeedPath:     getEnv("FEED_PATH", ""),
		OutputPath:   getEnv("OUTPUT_PATH", ""),
	}

	var err error
	cfg.WatchDebounce, err = time.ParseDuration(getEnv("WATCH_DEBOUNCE", "250ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_DEBOUNCE: %w", err)
	}

	cfg.RescanInterval, err = time.ParseDuration(getEnv("RESCAN_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESCAN_INTERVAL: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForWatch checks configuration needed to watch a feed.
func (c *Config) ValidateForWatch() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.FeedPath == "" {
		return fmt.Errorf("FEED_PATH is required for watching")
	}
	if feed.SamePath(c.FeedPath, c.OutputPath) {
		return fmt.Errorf("OUTPUT_PATH must differ from FEED_PATH")
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("WATCH_DEBOUNCE must be positive")
	}
	if c.RescanInterval <= 0 {
		return fmt.Errorf("RESCAN_INTERVAL must be positive")
	}
	return nil
}

// ValidateForServe checks configuration needed for serve mode.
// The feed watcher only runs when FEED_PATH is set.
func (c *Config) ValidateForServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required for serving")
	}
	if c.FeedPath != "" {
		return c.ValidateForWatch()
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
