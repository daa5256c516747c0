package errors

import (
	stdErrors "errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestSiteError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SiteError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestSiteError_WithContext(t *testing.T) {
	err := New(CategoryContent, SeverityWarning, "generation failed").
		WithContext("keyword", "air fryer").
		WithContext("model", "gemini")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}
	if err.Context["keyword"] != "air fryer" {
		t.Errorf("Context[keyword] = %v, want air fryer", err.Context["keyword"])
	}
	if err.Context["model"] != "gemini" {
		t.Errorf("Context[model] = %v, want gemini", err.Context["model"])
	}
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	renderErr := New(CategoryRender, SeverityFatal, "render error")
	wrapped := fmt.Errorf("stage posts: %w", renderErr)
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"config error matches config category", configErr, CategoryConfig, true},
		{"config error doesn't match render category", configErr, CategoryRender, false},
		{"wrapped render error matches render category", wrapped, CategoryRender, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsCategory(test.err, test.category); got != test.expected {
				t.Errorf("IsCategory() = %v, want %v", got, test.expected)
			}
		})
	}
}

func TestGetCategory_DefaultsToInternal(t *testing.T) {
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Errorf("GetCategory() = %v, want %v", got, CategoryInternal)
	}
	if got := GetCategory(ConfigRequired("site_url")); got != CategoryConfig {
		t.Errorf("GetCategory() = %v, want %v", got, CategoryConfig)
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("ConfigNotFound", func(t *testing.T) {
		err := ConfigNotFound("/path/to/sitesmith.yaml")
		if err.Category != CategoryConfig {
			t.Errorf("Category = %v, want %v", err.Category, CategoryConfig)
		}
		if err.Severity != SeverityFatal {
			t.Errorf("Severity = %v, want %v", err.Severity, SeverityFatal)
		}
		if err.Context["path"] != "/path/to/sitesmith.yaml" {
			t.Errorf("Context[path] = %v", err.Context["path"])
		}
	})

	t.Run("MalformedContent", func(t *testing.T) {
		cause := fmt.Errorf("unexpected end of JSON input")
		err := MalformedContent("best blender", cause)
		if err.Category != CategoryContent {
			t.Errorf("Category = %v, want %v", err.Category, CategoryContent)
		}
		if err.Severity != SeverityWarning {
			t.Errorf("Severity = %v, want %v", err.Severity, SeverityWarning)
		}
		if !stdErrors.Is(err, cause) {
			t.Errorf("Cause should match wrapped cause: %v", cause)
		}
	})

	t.Run("ValidationFailed", func(t *testing.T) {
		err := ValidationFailed("site.url", "must be absolute")
		if err.Context["field"] != "site.url" {
			t.Errorf("Context[field] = %v, want site.url", err.Context["field"])
		}
		if err.Context["reason"] != "must be absolute" {
			t.Errorf("Context[reason] = %v, want must be absolute", err.Context["reason"])
		}
	})
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", fmt.Errorf("boom"), 1},
		{"validation", ValidationFailed("site.url", "bad scheme"), 2},
		{"config", ConfigRequired("site_url"), 7},
		{"render", RenderFailed("index.html", fmt.Errorf("x")), 11},
		{"wrapped filesystem", fmt.Errorf("promote: %w", WriteFailed("/tmp/x", fmt.Errorf("denied"))), 11},
		{"publish", PublishFailed("commit", fmt.Errorf("x")), 12},
		{"internal", InternalError("oops", nil), 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.ExitCodeFor(tc.err); got != tc.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)
	err := Wrap(fmt.Errorf("denied"), CategoryFileSystem, SeverityFatal, "write failed")

	if got := quiet.FormatError(err); got != "filesystem: write failed" {
		t.Errorf("quiet FormatError() = %q", got)
	}
	if got := verbose.FormatError(err); got != err.Error() {
		t.Errorf("verbose FormatError() = %q", got)
	}
	if got := quiet.FormatError(ConfigRequired("site_url")); got != "required configuration missing" {
		t.Errorf("config FormatError() = %q", got)
	}
	if got := quiet.FormatError(fmt.Errorf("plain")); got != "Error: plain" {
		t.Errorf("plain FormatError() = %q", got)
	}
}
