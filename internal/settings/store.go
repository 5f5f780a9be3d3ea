// Package settings persists the filter settings and notifies subscribers
// when they change.
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/abdulachik/feedfilter/internal/db"
	"github.com/abdulachik/feedfilter/internal/filter"
)

// StorageKey is the top-level key of an exported settings record.
const StorageKey = "redditFilter"

var (
	// ErrEmptyKeyword is returned when keyword input holds no usable keyword.
	ErrEmptyKeyword = errors.New("keyword is empty")

	// ErrKeywordNotFound is returned when removing a keyword that is not configured.
	ErrKeywordNotFound = errors.New("keyword not found")
)

// Store reads and writes filter settings.
type Store struct {
	db *db.Store

	// writeMu serializes read-modify-write updates.
	writeMu sync.Mutex

	mu          sync.Mutex
	subscribers map[int]chan filter.Settings
	nextID      int
}

// New creates a settings store on a migrated database.
func New(store *db.Store) *Store {
	return &Store{
		db:          store,
		subscribers: make(map[int]chan filter.Settings),
	}
}

// Load returns the stored settings. A missing record yields the defaults.
func (s *Store) Load(ctx context.Context) (filter.Settings, error) {
	settings := filter.DefaultSettings()

	err := s.db.QueryRowContext(ctx,
		"SELECT hide_geo_popular, hide_ads FROM settings WHERE id = 1",
	).Scan(&settings.HideGeoPopular, &settings.HideAds)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return filter.Settings{}, fmt.Errorf("query settings: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT keyword FROM keywords ORDER BY position")
	if err != nil {
		return filter.Settings{}, fmt.Errorf("query keywords: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return filter.Settings{}, fmt.Errorf("scan keyword: %w", err)
		}
		settings.Keywords = append(settings.Keywords, kw)
	}
	if err := rows.Err(); err != nil {
		return filter.Settings{}, fmt.Errorf("iterate keywords: %w", err)
	}

	return settings, nil
}

// Save replaces the stored settings. Keywords are normalized first.
func (s *Store) Save(ctx context.Context, settings filter.Settings) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.save(ctx, settings)
}

// AddKeywords adds the comma-separated keywords in input, skipping ones
// already configured, and returns those actually added.
func (s *Store) AddKeywords(ctx context.Context, input string) ([]string, error) {
	parsed := ParseKeywords(input)
	if len(parsed) == 0 {
		return nil, ErrEmptyKeyword
	}

	var added []string
	err := s.update(ctx, func(settings *filter.Settings) error {
		for _, kw := range parsed {
			if !settings.HasKeyword(kw) {
				added = append(added, kw)
			}
		}
		settings.Keywords = append(settings.Keywords, added...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

// RemoveKeyword removes keyword from the settings.
func (s *Store) RemoveKeyword(ctx context.Context, keyword string) error {
	kw := NormalizeKeyword(keyword)
	if kw == "" {
		return ErrEmptyKeyword
	}

	return s.update(ctx, func(settings *filter.Settings) error {
		kept := settings.Keywords[:0]
		for _, k := range settings.Keywords {
			if k != kw {
				kept = append(kept, k)
			}
		}
		if len(kept) == len(settings.Keywords) {
			return fmt.Errorf("%w: %s", ErrKeywordNotFound, kw)
		}
		settings.Keywords = kept
		return nil
	})
}

// ClearKeywords removes every keyword, leaving the toggles untouched.
func (s *Store) ClearKeywords(ctx context.Context) error {
	return s.update(ctx, func(settings *filter.Settings) error {
		settings.Keywords = []string{}
		return nil
	})
}

// SetHideGeoPopular toggles hiding of geo/explore recommended posts.
func (s *Store) SetHideGeoPopular(ctx context.Context, hide bool) error {
	return s.update(ctx, func(settings *filter.Settings) error {
		settings.HideGeoPopular = hide
		return nil
	})
}

// SetHideAds toggles hiding of sponsored posts.
func (s *Store) SetHideAds(ctx context.Context, hide bool) error {
	return s.update(ctx, func(settings *filter.Settings) error {
		settings.HideAds = hide
		return nil
	})
}

// Subscribe returns a channel receiving the settings after every change and
// a function that unsubscribes. Only the most recent unread settings are
// kept for a slow subscriber.
func (s *Store) Subscribe() (<-chan filter.Settings, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan filter.Settings, 1)
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

// Export writes the settings as a JSON record under StorageKey.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	settings, err := s.Load(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]filter.Settings{StorageKey: settings}); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

// Import reads a settings record written by Export, or a bare settings
// object, and saves it.
func (s *Store) Import(ctx context.Context, r io.Reader) (filter.Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return filter.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	settings, err := decodeRecord(data)
	if err != nil {
		return filter.Settings{}, err
	}

	if err := s.Save(ctx, settings); err != nil {
		return filter.Settings{}, err
	}

	return s.Load(ctx)
}

func decodeRecord(data []byte) (filter.Settings, error) {
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return filter.Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	if inner, ok := wrapped[StorageKey]; ok {
		data = inner
	}

	var settings filter.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return filter.Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	return settings, nil
}

// update applies fn to the current settings and saves the result.
func (s *Store) update(ctx context.Context, fn func(*filter.Settings) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	settings, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(&settings); err != nil {
		return err
	}

	return s.save(ctx, settings)
}

func (s *Store) save(ctx context.Context, settings filter.Settings) error {
	saved := filter.Settings{
		Keywords:       NormalizeKeywords(settings.Keywords),
		HideGeoPopular: settings.HideGeoPopular,
		HideAds:        settings.HideAds,
	}

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO settings (id, hide_geo_popular, hide_ads, updated_at)
			VALUES (1, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO UPDATE SET
				hide_geo_popular = excluded.hide_geo_popular,
				hide_ads = excluded.hide_ads,
				updated_at = CURRENT_TIMESTAMP
		`, saved.HideGeoPopular, saved.HideAds)
		if err != nil {
			return fmt.Errorf("save settings: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM keywords"); err != nil {
			return fmt.Errorf("clear keywords: %w", err)
		}

		for _, kw := range saved.Keywords {
			if _, err := tx.ExecContext(ctx, "INSERT INTO keywords (keyword) VALUES (?)", kw); err != nil {
				return fmt.Errorf("insert keyword %q: %w", kw, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("settings saved",
		"keywords", len(saved.Keywords),
		"hide_geo_popular", saved.HideGeoPopular,
		"hide_ads", saved.HideAds,
	)

	s.notify(saved)
	return nil
}

// notify delivers settings to every subscriber, replacing any unread value.
func (s *Store) notify(settings filter.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- settings.Clone()
	}
}
