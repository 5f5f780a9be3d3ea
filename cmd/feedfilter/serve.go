package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdulachik/feedfilter/internal/app"
	"github.com/abdulachik/feedfilter/internal/config"
	"github.com/abdulachik/feedfilter/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API for editing settings and classifying posts.

When FEED_PATH is set the feed watcher runs alongside it and re-filters
the snapshot whenever it or the settings change.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForServe(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	slog.Info("connecting to database", "path", cfg.DatabasePath)
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open app: %w", err)
	}
	defer a.Close()

	srv := server.New(server.Config{
		Addr:     cfg.HTTPAddr,
		Settings: a.Settings,
		Metrics:  a.Metrics,
		Health:   a.Health,
	})

	errCh := make(chan error, 2)
	go func() {
		errCh <- srv.Run(ctx)
	}()

	if cfg.FeedPath != "" {
		w := a.NewWatcher()
		go func() {
			errCh <- w.Run(ctx)
		}()
	}

	return waitForShutdown(ctx, cancel, errCh)
}

// waitForShutdown blocks until a signal arrives or a background task fails.
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, errCh <-chan error) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			runErr = err
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	cancel()

	return runErr
}
