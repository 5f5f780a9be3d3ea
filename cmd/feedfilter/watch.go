package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/feedfilter/internal/app"
	"github.com/abdulachik/feedfilter/internal/config"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Watch a feed snapshot and re-filter it on change",
	Long: `Watch a feed snapshot and re-filter it whenever the file or the settings
change. The file defaults to FEED_PATH; visible posts are written to
--output (or OUTPUT_PATH) after each pass.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var watchOutput string

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Write the visible posts to this file (.jsonl)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if len(args) == 1 {
		cfg.FeedPath = args[0]
	}
	if watchOutput != "" {
		cfg.OutputPath = watchOutput
	}

	if err := cfg.ValidateForWatch(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	slog.Info("connecting to database", "path", cfg.DatabasePath)
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open app: %w", err)
	}
	defer a.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.NewWatcher().Run(ctx)
	}()

	return waitForShutdown(ctx, cancel, errCh)
}
