package feed

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 1 << 20

// ReadJSONL reads one post snapshot per line. Blank lines are skipped and
// missing attributes are left empty.
func ReadJSONL(r io.Reader) ([]Post, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var posts []Post
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		var p Post
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p.Kind = normalizeKind(p.Kind)
		posts = append(posts, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan posts: %w", err)
	}

	return posts, nil
}

// WriteJSONL writes posts one per line.
func WriteJSONL(w io.Writer, posts []Post) error {
	enc := json.NewEncoder(w)
	for _, p := range posts {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode post %s: %w", p.ID, err)
		}
	}
	return nil
}
