package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyKeyword    = "keyword"
	KeySlug       = "slug"
	KeyCategory   = "category"
	KeyTag        = "tag"
	KeyPath       = "path"
	KeyPage       = "page"
	KeyCount      = "count"
	KeyGenerator  = "generator"
	KeyModel      = "model"
	KeyTheme      = "theme"
	KeyOutcome    = "outcome"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Keyword(k string) slog.Attr      { return slog.String(KeyKeyword, k) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Tag(t string) slog.Attr          { return slog.String(KeyTag, t) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Page(n int) slog.Attr            { return slog.Int(KeyPage, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Generator(name string) slog.Attr { return slog.String(KeyGenerator, name) }
func Model(name string) slog.Attr     { return slog.String(KeyModel, name) }
func Theme(name string) slog.Attr     { return slog.String(KeyTheme, name) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
