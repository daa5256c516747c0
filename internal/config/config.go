package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Publish PublishConfig `yaml:"publish"`
}

// SiteConfig holds branding and presentation settings.
type SiteConfig struct {
	Brand     string       `yaml:"brand"`
	URL       string       `yaml:"url"`
	Theme     string       `yaml:"theme,omitempty"`
	Audience  string       `yaml:"audience,omitempty"`
	Domain    string       `yaml:"domain,omitempty"`
	Analytics string       `yaml:"analytics,omitempty"` // "plausible:DOMAIN" and/or "ga4:G-XXXX", comma separated
	AmazonTag string       `yaml:"amazon_tag,omitempty"`
	PageSize  int          `yaml:"page_size,omitempty"`
	FeedSize  int          `yaml:"feed_size,omitempty"`
	Author    AuthorConfig `yaml:"author,omitempty"`
}

// AuthorConfig is the default byline applied to every post.
type AuthorConfig struct {
	Name string `yaml:"name,omitempty"`
	Bio  string `yaml:"bio,omitempty"`
	URL  string `yaml:"url,omitempty"`
}

// ContentConfig controls where keywords come from and how records are generated.
type ContentConfig struct {
	KeywordsFile string `yaml:"keywords_file"`
	Limit        int    `yaml:"limit"`
	Generator    string `yaml:"generator"` // stub | genai
	Model        string `yaml:"model,omitempty"`
	APIKey       string `yaml:"api_key,omitempty"`
	PagesDir     string `yaml:"pages_dir,omitempty"`
	ImagesFile   string `yaml:"images_file,omitempty"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory   string `yaml:"directory"`
	Minify      bool   `yaml:"minify,omitempty"`
	Report      bool   `yaml:"report,omitempty"` // write build-report.json/.txt into the output directory
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// PublishConfig controls the optional git commit of the generated site.
type PublishConfig struct {
	Enabled     bool   `yaml:"enabled"`
	AuthorName  string `yaml:"author_name,omitempty"`
	AuthorEmail string `yaml:"author_email,omitempty"`
	Message     string `yaml:"message,omitempty"`
}

// Default returns a configuration with every default applied and no site URL.
func Default() *Config {
	cfg := &Config{}
	if err := ApplyDefaults(cfg); err != nil {
		// Appliers only fill zero values; failure here is a programming error.
		panic(err)
	}
	return cfg
}

// Load loads configuration from the specified file. An empty path returns
// the defaults. Environment variables (including those from .env files) are
// expanded in the YAML content before decoding.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	if configPath == "" {
		return Default(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, serrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, serrors.Wrap(err, serrors.CategoryConfig, serrors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, serrors.Wrap(err, serrors.CategoryConfig, serrors.SeverityFatal, "failed to unmarshal config").
			WithContext("path", configPath)
	}

	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BasePrefix is the URL path the site is served under ("" at a domain root,
// "/repo" for https://user.github.io/repo).
func (c *Config) BasePrefix() string {
	u, err := url.Parse(strings.TrimSpace(c.Site.URL))
	if err != nil {
		return ""
	}
	return strings.TrimRight(u.Path, "/")
}

// SiteURL is the configured site URL without a trailing slash.
func (c *Config) SiteURL() string {
	return strings.TrimRight(strings.TrimSpace(c.Site.URL), "/")
}

// ResolveAPIKey returns the configured model API key, falling back to the
// GEMINI_API_KEY and GOOGLE_API_KEY environment variables.
func (c *Config) ResolveAPIKey() string {
	if c.Content.APIKey != "" {
		return c.Content.APIKey
	}
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) String() string {
	return fmt.Sprintf("site=%s brand=%q generator=%s limit=%d output=%s",
		c.SiteURL(), c.Site.Brand, c.Content.Generator, c.Content.Limit, c.Output.Directory)
}
