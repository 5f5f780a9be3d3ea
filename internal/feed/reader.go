package feed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for snapshot files of unknown type.
	ErrUnsupportedFormat = errors.New("unsupported feed format")

	// ErrOutputIsFeed is returned when the output would overwrite the feed
	// it was filtered from.
	ErrOutputIsFeed = errors.New("output path is the feed path")
)

// ReadFile reads a feed snapshot, choosing the format by file extension:
// .jsonl (post snapshots), .json (Reddit listing), .html or .htm (rendered page).
func ReadFile(path string) ([]Post, error) {
	read, err := readerFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()

	posts, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return posts, nil
}

func readerFor(path string) (func(io.Reader) ([]Post, error), error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jsonl", ".ndjson":
		return ReadJSONL, nil
	case ".json":
		return ReadListing, nil
	case ".html", ".htm":
		return ReadHTML, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// WriteFile atomically replaces path with posts in JSONL form.
func WriteFile(path string, posts []Post) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".feedfilter-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteJSONL(tmp, posts); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}

// SamePath reports whether a and b name the same file, either lexically or,
// when both exist, on disk.
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}

	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
