package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/abdulachik/feedfilter/internal/app"
	"github.com/abdulachik/feedfilter/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "feedfilter",
	Short: "A keyword and geo-recommendation filter for Reddit feeds",
	Long: `feedfilter hides Reddit posts whose title or subreddit matches a
blocked keyword, geo-popular recommendations and sponsored posts.

It keeps its settings in SQLite and can filter saved feed snapshots once,
watch a snapshot for changes, or serve an HTTP API for editing settings.`,
	SilenceUsage: true,
}

func init() {
	// Load .env file if present
	_ = godotenv.Load()

	// Set up logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp loads and validates configuration and opens the settings database.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open app: %w", err)
	}
	return a, nil
}
