package app

import (
	"context"

	"github.com/abdulachik/feedfilter/internal/config"
	"github.com/abdulachik/feedfilter/internal/db"
	"github.com/abdulachik/feedfilter/internal/metrics"
	"github.com/abdulachik/feedfilter/internal/settings"
	"github.com/abdulachik/feedfilter/internal/watcher"
)

// App is the main application container holding all dependencies.
type App struct {
	Config   *config.Config
	Store    *db.Store
	Settings *settings.Store
	Metrics  *metrics.Metrics
	Health   *watcher.Health
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Store:    store,
		Settings: settings.New(store),
		Metrics:  metrics.New(),
		Health:   watcher.NewHealth(),
	}, nil
}

// NewWatcher creates a feed watcher sharing the app's settings, metrics and health.
func (a *App) NewWatcher() *watcher.Watcher {
	return watcher.New(watcher.Config{
		FeedPath:       a.Config.FeedPath,
		OutputPath:     a.Config.OutputPath,
		Debounce:       a.Config.WatchDebounce,
		RescanInterval: a.Config.RescanInterval,
		Settings:       a.Settings,
		Metrics:        a.Metrics,
		Health:         a.Health,
	})
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
