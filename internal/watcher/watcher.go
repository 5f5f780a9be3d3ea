// Package watcher re-runs the filter over a feed snapshot whenever the
// snapshot or the settings change.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/abdulachik/feedfilter/internal/feed"
	"github.com/abdulachik/feedfilter/internal/filter"
	"github.com/abdulachik/feedfilter/internal/metrics"
	"github.com/fsnotify/fsnotify"
)

// Pass triggers.
const (
	TriggerStartup  = "startup"
	TriggerFeed     = "feed"
	TriggerSettings = "settings"
	TriggerRescan   = "rescan"
)

const (
	defaultDebounce       = 250 * time.Millisecond
	defaultRescanInterval = 5 * time.Minute
)

// SettingsSource provides the current settings and change notifications.
type SettingsSource interface {
	Load(ctx context.Context) (filter.Settings, error)
	Subscribe() (<-chan filter.Settings, func())
}

// Config holds watcher configuration.
type Config struct {
	FeedPath       string
	OutputPath     string // optional; visible posts are written here after each pass
	Debounce       time.Duration
	RescanInterval time.Duration
	Settings       SettingsSource
	Metrics        *metrics.Metrics
	Health         *Health
}

// Watcher runs filter passes over one feed snapshot file.
// Passes run sequentially on the goroutine calling Run.
type Watcher struct {
	feedPath       string
	outputPath     string
	debounce       time.Duration
	rescanInterval time.Duration
	source         SettingsSource
	metrics        *metrics.Metrics
	health         *Health

	settings filter.Settings
}

// New creates a watcher.
func New(cfg Config) *Watcher {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	rescan := cfg.RescanInterval
	if rescan <= 0 {
		rescan = defaultRescanInterval
	}

	health := cfg.Health
	if health == nil {
		health = NewHealth()
	}

	return &Watcher{
		feedPath:       filepath.Clean(cfg.FeedPath),
		outputPath:     cfg.OutputPath,
		debounce:       debounce,
		rescanInterval: rescan,
		source:         cfg.Settings,
		metrics:        cfg.Metrics,
		health:         health,
		settings:       filter.DefaultSettings(),
	}
}

// Health returns the health tracker.
func (w *Watcher) Health() *Health {
	return w.health
}

// Run loads the settings, runs an initial pass and then re-runs passes on
// feed changes, settings changes and every rescan interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("starting feed watcher",
		"feed", w.feedPath,
		"output", w.outputPath,
		"debounce", w.debounce,
		"rescan_interval", w.rescanInterval,
	)

	if feed.SamePath(w.feedPath, w.outputPath) {
		return fmt.Errorf("%w: %s", feed.ErrOutputIsFeed, w.outputPath)
	}

	updates, unsubscribe := w.source.Subscribe()
	defer unsubscribe()

	w.loadSettings(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory so editors that replace the file are noticed.
	if err := fsw.Add(filepath.Dir(w.feedPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.feedPath), err)
	}

	rescan := time.NewTicker(w.rescanInterval)
	defer rescan.Stop()

	w.Pass(ctx, TriggerStartup)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			slog.Info("feed watcher shutting down")
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if w.isFeedChange(event) {
				slog.Debug("feed changed", "op", event.Op.String())
				pending = time.After(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			w.health.SetUnhealthy(ComponentWatch, err)
			slog.Warn("file watcher error", "error", err)

		case settings, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			w.settings = settings
			w.health.SetHealthy(ComponentSettings, "updated")
			w.Pass(ctx, TriggerSettings)

		case <-pending:
			pending = nil
			w.Pass(ctx, TriggerFeed)

		case <-rescan.C:
			w.Pass(ctx, TriggerRescan)
		}
	}
}

// Pass reads the feed, applies the current settings and writes the visible
// posts to the output path. Failures are recorded in health and metrics.
func (w *Watcher) Pass(ctx context.Context, trigger string) (feed.Result, error) {
	start := time.Now()

	result, err := w.pass(ctx)
	if err != nil {
		w.health.SetUnhealthy(ComponentFeed, err)
		w.metrics.ObserveFailure(trigger)
		slog.Error("filter pass failed", "trigger", trigger, "error", err)
		return feed.Result{}, err
	}

	w.health.SetHealthy(ComponentFeed, fmt.Sprintf("%d of %d posts hidden", result.Hidden, result.Total))
	w.metrics.ObservePass(trigger, result, time.Since(start))

	slog.Info("filter pass complete",
		"trigger", trigger,
		"total", result.Total,
		"hidden", result.Hidden,
		"by_keyword", result.HiddenByKeyword,
		"by_geo", result.HiddenByGeo,
		"ads", result.HiddenAds,
	)

	return result, nil
}

func (w *Watcher) pass(ctx context.Context) (feed.Result, error) {
	if err := ctx.Err(); err != nil {
		return feed.Result{}, err
	}
	if feed.SamePath(w.feedPath, w.outputPath) {
		return feed.Result{}, fmt.Errorf("%w: %s", feed.ErrOutputIsFeed, w.outputPath)
	}

	posts, err := feed.ReadFile(w.feedPath)
	if err != nil {
		return feed.Result{}, err
	}

	result := feed.Apply(posts, w.settings.Clone())

	if w.outputPath != "" {
		if err := feed.WriteFile(w.outputPath, feed.Visible(posts)); err != nil {
			return feed.Result{}, fmt.Errorf("write output: %w", err)
		}
	}

	return result, nil
}

// loadSettings reads the initial settings, keeping defaults on failure.
func (w *Watcher) loadSettings(ctx context.Context) {
	settings, err := w.source.Load(ctx)
	if err != nil {
		w.health.SetUnhealthy(ComponentSettings, err)
		slog.Error("failed to load settings, using defaults", "error", err)
		return
	}

	w.settings = settings
	w.health.SetHealthy(ComponentSettings, "loaded")
}

func (w *Watcher) isFeedChange(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.feedPath {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
