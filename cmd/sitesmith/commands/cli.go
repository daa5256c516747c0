package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitesmith/internal/config"
)

// CLI is the single sitesmith command. Flags override values from the
// optional configuration file.
type CLI struct {
	SiteURL      string `name:"site-url" required:"" help:"Public base URL of the site (e.g. https://user.github.io/blog)"`
	Config       string `short:"c" env:"SITESMITH_CONFIG" help:"Optional YAML configuration file" type:"path"`
	Brand        string `help:"Site brand shown in titles and the header"`
	KeywordsFile string `name:"keywords-file" help:"JSON keyword list" type:"path"`
	Limit        *int   `help:"Maximum number of keywords to build (default 3)"`
	Output       string `short:"o" help:"Output directory" type:"path"`
	Theme        string `help:"Theme name (bulma, pico, plain)"`
	Audience     string `help:"Audience description used in prompts and the about page"`
	Domain       string `help:"Contact domain for the contact page"`
	Analytics    string `help:"Analytics providers, e.g. plausible:example.com,ga4:G-XXXX"`
	AmazonTag    string `name:"amazon-tag" help:"Amazon affiliate tag"`
	AuthorName   string `name:"author-name" help:"Default post author"`
	AuthorBio    string `name:"author-bio" help:"Default author bio"`
	AuthorURL    string `name:"author-url" help:"Default author profile URL"`
	Generator    string `help:"Content generator (stub|genai)"`
	Model        string `help:"Model name for the genai generator"`
	PagesDir     string `name:"pages-dir" help:"Directory of Markdown pages overriding or adding static pages" type:"path"`
	ImagesFile   string `name:"images-file" help:"JSON or YAML map of post slug to hero image URL" type:"path"`
	Report       bool   `help:"Write build-report.json and build-report.txt into the output"`
	MetricsFile  string `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path" type:"path"`
	Publish      bool   `help:"Commit the generated site into a git repository in the output directory"`
	Minify       bool   `help:"Minify generated HTML"`
	Watch        bool   `short:"w" help:"Rebuild when the keyword file, config or pages change"`

	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.ParseLogLevel(c.Verbose)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// LoadConfig reads the configuration file (if any), applies flag overrides
// and validates the result.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	c.applyOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CLI) applyOverrides(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Site.URL, c.SiteURL)
	set(&cfg.Site.Brand, c.Brand)
	set(&cfg.Site.Theme, c.Theme)
	set(&cfg.Site.Audience, c.Audience)
	set(&cfg.Site.Domain, c.Domain)
	set(&cfg.Site.Analytics, c.Analytics)
	set(&cfg.Site.AmazonTag, c.AmazonTag)
	set(&cfg.Site.Author.Name, c.AuthorName)
	set(&cfg.Site.Author.Bio, c.AuthorBio)
	set(&cfg.Site.Author.URL, c.AuthorURL)
	set(&cfg.Content.KeywordsFile, c.KeywordsFile)
	set(&cfg.Content.Generator, c.Generator)
	set(&cfg.Content.Model, c.Model)
	set(&cfg.Content.PagesDir, c.PagesDir)
	set(&cfg.Content.ImagesFile, c.ImagesFile)
	set(&cfg.Output.Directory, c.Output)
	set(&cfg.Output.MetricsFile, c.MetricsFile)
	if c.Limit != nil {
		cfg.Content.Limit = *c.Limit
	}
	cfg.Output.Report = cfg.Output.Report || c.Report
	cfg.Output.Minify = cfg.Output.Minify || c.Minify
	cfg.Publish.Enabled = cfg.Publish.Enabled || c.Publish
}
