// Package keywords loads the keyword list that drives a build.
package keywords

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
)

// Placeholder is the keyword written into a freshly created keyword file.
const Placeholder = "sample post"

type fileShape struct {
	Keywords []string `json:"keywords"`
}

// Load reads the keyword file at path. Both a bare JSON array and an object
// with a "keywords" array are accepted. Entries are trimmed and empty entries
// dropped; order and duplicates are preserved.
//
// A missing or invalid file is not fatal: Load returns an empty list together
// with a warning error, and writes a placeholder file so the next run has
// something to edit. The placeholder keyword is not used by the current build.
func Load(path string) ([]string, error) {
	list, err := read(path)
	if err == nil {
		return list, nil
	}

	warn := serrors.KeywordsUnreadable(path, err)
	slog.Warn("Keyword file missing or invalid, writing placeholder", logfields.Path(path), logfields.Error(err))
	if werr := WritePlaceholder(path); werr != nil {
		slog.Warn("Failed to write placeholder keyword file", logfields.Path(path), logfields.Error(werr))
	}
	return []string{}, warn
}

func read(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		var obj fileShape
		if objErr := json.Unmarshal(data, &obj); objErr != nil {
			return nil, fmt.Errorf("parse keyword file: %w", objErr)
		}
		raw = obj.Keywords
	}
	return Clean(raw), nil
}

// Clean trims entries and drops the empty ones.
func Clean(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, k := range raw {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// WritePlaceholder writes {"keywords": ["sample post"]} to path, creating parent directories.
func WritePlaceholder(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create keyword directory: %w", err)
	}
	data, err := json.MarshalIndent(fileShape{Keywords: []string{Placeholder}}, "", "  ")
	if err != nil {
		return err
	}
	// #nosec G306 -- keyword list is not sensitive
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Limit returns at most n leading keywords; a negative n selects none.
func Limit(list []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(list) {
		n = len(list)
	}
	return list[:n]
}
