package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultBrand, cfg.Site.Brand)
	assert.Equal(t, DefaultTheme, cfg.Site.Theme)
	assert.Equal(t, DefaultPageSize, cfg.Site.PageSize)
	assert.Equal(t, DefaultFeedSize, cfg.Site.FeedSize)
	assert.Equal(t, DefaultAuthorName, cfg.Site.Author.Name)
	assert.Equal(t, DefaultKeywordsFile, cfg.Content.KeywordsFile)
	assert.Equal(t, DefaultLimit, cfg.Content.Limit)
	assert.Equal(t, GeneratorStub, cfg.Content.Generator)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	assert.Equal(t, "sitesmith@example.com", cfg.Publish.AuthorEmail)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("SITESMITH_TEST_URL", "https://blog.example.org")
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
site:
  brand: Kitchen Notes
  url: ${SITESMITH_TEST_URL}
  theme: Bulma
content:
  generator: STUB
  limit: 5
output:
  directory: public
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen Notes", cfg.Site.Brand)
	assert.Equal(t, "https://blog.example.org", cfg.Site.URL)
	assert.Equal(t, "bulma", cfg.Site.Theme)
	assert.Equal(t, GeneratorStub, cfg.Content.Generator)
	assert.Equal(t, 5, cfg.Content.Limit)
	assert.Equal(t, "public", cfg.Output.Directory)
	require.NoError(t, Validate(cfg))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, serrors.IsCategory(err, serrors.CategoryConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "site: [unterminated")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, serrors.IsCategory(err, serrors.CategoryConfig))
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBrand, cfg.Site.Brand)
}

func TestBasePrefix(t *testing.T) {
	cases := map[string]string{
		"https://example.com":             "",
		"https://example.com/":            "",
		"https://user.github.io/repo":     "/repo",
		"https://user.github.io/repo/":    "/repo",
		"https://example.com/blog/nested": "/blog/nested",
	}
	for in, want := range cases {
		cfg := Default()
		cfg.Site.URL = in
		assert.Equal(t, want, cfg.BasePrefix(), in)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing url", func(c *Config) { c.Site.URL = "" }, ""},
		{"bad scheme", func(c *Config) { c.Site.URL = "ftp://example.com" }, "site.url"},
		{"no host", func(c *Config) { c.Site.URL = "https://" }, "site.url"},
		{"page size", func(c *Config) { c.Site.PageSize = -1 }, "site.page_size"},
		{"generator", func(c *Config) { c.Content.Generator = "gpt" }, "content.generator"},
		{"analytics", func(c *Config) { c.Site.Analytics = "matomo:1" }, "site.analytics"},
		{"genai without key", func(c *Config) { c.Content.Generator = GeneratorGenAI }, ""},
		{"root output", func(c *Config) { c.Output.Directory = "/" }, "output.directory"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Site.URL = "https://example.com"
			tc.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			se, ok := serrors.As(err)
			require.True(t, ok)
			if tc.field != "" {
				assert.Equal(t, tc.field, se.Context["field"])
			}
		})
	}

	cfg := Default()
	cfg.Site.URL = "https://example.com"
	cfg.Site.Analytics = "plausible:example.com, ga4:G-123"
	require.NoError(t, Validate(cfg))
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google")
	cfg := Default()
	assert.Equal(t, "google", cfg.ResolveAPIKey())

	t.Setenv("GEMINI_API_KEY", "gemini")
	assert.Equal(t, "gemini", cfg.ResolveAPIKey())

	cfg.Content.APIKey = "explicit"
	assert.Equal(t, "explicit", cfg.ResolveAPIKey())
}

func TestParseLogLevel(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	assert.Equal(t, slog.LevelInfo, ParseLogLevel(false))
	assert.Equal(t, slog.LevelDebug, ParseLogLevel(true))

	t.Setenv(LogLevelEnv, "warn")
	assert.Equal(t, slog.LevelWarn, ParseLogLevel(true))
}

func TestLoadImageMap(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "images.json", `{"air-fryer": "https://img.example/af.jpg"}`)
	yamlPath := writeFile(t, dir, "images.yaml", "blender: https://img.example/b.jpg\n")

	m, err := LoadImageMap(jsonPath)
	require.NoError(t, err)
	got, ok := m.Lookup("air-fryer", "")
	assert.True(t, ok)
	assert.Equal(t, "https://img.example/af.jpg", got)

	m, err = LoadImageMap(yamlPath)
	require.NoError(t, err)
	got, ok = m.Lookup("best-blender", "Blender")
	assert.True(t, ok)
	assert.Equal(t, "https://img.example/b.jpg", got)

	m, err = LoadImageMap("")
	require.NoError(t, err)
	_, ok = m.Lookup("x", "x")
	assert.False(t, ok)

	_, err = LoadImageMap(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestLoadEnvFilePreservesExisting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "SITESMITH_ENV_A=from-file\nSITESMITH_ENV_B=from-file\n")
	t.Chdir(dir)
	t.Setenv("SITESMITH_ENV_A", "from-env")
	t.Setenv("SITESMITH_ENV_B", "")
	require.NoError(t, os.Unsetenv("SITESMITH_ENV_B"))
	t.Cleanup(func() { _ = os.Unsetenv("SITESMITH_ENV_B") })

	require.NoError(t, loadEnvFile())
	assert.Equal(t, "from-env", os.Getenv("SITESMITH_ENV_A"))
	assert.Equal(t, "from-file", os.Getenv("SITESMITH_ENV_B"))
}
