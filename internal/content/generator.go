package content

import (
	"context"
	"log/slog"
	"strings"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
	"git.home.luguber.info/inful/sitesmith/internal/slug"
)

// Generator produces the structured record for one keyword. Implementations
// block until the record is available; there is no retry.
type Generator interface {
	Name() string
	Generate(ctx context.Context, keyword string) (Record, error)
}

// Resolve asks gen for the keyword's record and normalizes it. Any generation
// error is logged and replaced by the fallback record; the returned error is
// the warning to attach to the build report (nil on success).
func Resolve(ctx context.Context, gen Generator, keyword string) (Record, error) {
	rec, err := gen.Generate(ctx, keyword)
	if err != nil {
		var warn *serrors.SiteError
		if se, ok := serrors.As(err); ok && se.Category == serrors.CategoryContent {
			warn = se
		} else {
			warn = serrors.GenerationFailed(keyword, err)
		}
		slog.Warn("Content generation failed, using fallback record",
			logfields.Keyword(keyword), logfields.Generator(gen.Name()), logfields.Error(err))
		rec = Fallback(keyword)
		return rec, warn
	}
	rec.Keyword = keyword
	return Normalize(rec), nil
}

// Normalize fills defaults the renderer relies on: a title, a category and a
// clean tag list.
func Normalize(rec Record) Record {
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Title == "" {
		rec.Title = fallbackTitle(rec.Keyword)
	}
	rec.Category = strings.TrimSpace(rec.Category)
	if rec.Category == "" {
		rec.Category = DefaultCategory
	}
	rec.Tags = cleanTags(rec.Tags)
	return rec
}

// cleanTags trims tags, drops empties and removes case-insensitive duplicates
// while keeping the first spelling.
func cleanTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func fallbackTitle(keyword string) string {
	if t := slug.Title(keyword); t != "" {
		return t
	}
	return "Untitled Post"
}
