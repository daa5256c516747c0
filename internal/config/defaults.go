package config

import (
	"fmt"
	"strings"
)

// Default values applied when the configuration leaves a field empty.
const (
	DefaultBrand        = "My Test Blog"
	DefaultTheme        = "bulma"
	DefaultAudience     = "home cooks in US"
	DefaultDomain       = "example.com"
	DefaultAmazonTag    = "yourtag-20"
	DefaultPageSize     = 8
	DefaultFeedSize     = 20
	DefaultAuthorName   = "Staff Writer"
	DefaultKeywordsFile = "data/keywords.json"
	DefaultLimit        = 3
	DefaultGenerator    = GeneratorStub
	DefaultOutputDir    = "./site"
	DefaultCommitMsg    = "Update generated site"
)

// Generator names accepted in content.generator.
const (
	GeneratorStub  = "stub"
	GeneratorGenAI = "genai"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles Site configuration defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	s := &cfg.Site
	if strings.TrimSpace(s.Brand) == "" {
		s.Brand = DefaultBrand
	}
	if s.Theme == "" {
		s.Theme = DefaultTheme
	}
	s.Theme = strings.ToLower(strings.TrimSpace(s.Theme))
	if s.Audience == "" {
		s.Audience = DefaultAudience
	}
	if s.Domain == "" {
		s.Domain = DefaultDomain
	}
	if s.AmazonTag == "" {
		s.AmazonTag = DefaultAmazonTag
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.FeedSize <= 0 {
		s.FeedSize = DefaultFeedSize
	}
	if s.Author.Name == "" {
		s.Author.Name = DefaultAuthorName
	}
	return nil
}

// ContentDefaultApplier handles Content configuration defaults.
type ContentDefaultApplier struct{}

func (ContentDefaultApplier) Domain() string { return "content" }

func (ContentDefaultApplier) ApplyDefaults(cfg *Config) error {
	c := &cfg.Content
	if c.KeywordsFile == "" {
		c.KeywordsFile = DefaultKeywordsFile
	}
	// Zero means "not configured"; an explicit empty build uses an empty keyword file.
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	if c.Generator == "" {
		c.Generator = DefaultGenerator
	}
	c.Generator = strings.ToLower(strings.TrimSpace(c.Generator))
	return nil
}

// OutputDefaultApplier handles Output configuration defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}
	return nil
}

// PublishDefaultApplier handles Publish configuration defaults.
type PublishDefaultApplier struct{}

func (PublishDefaultApplier) Domain() string { return "publish" }

func (PublishDefaultApplier) ApplyDefaults(cfg *Config) error {
	p := &cfg.Publish
	if p.AuthorName == "" {
		p.AuthorName = "sitesmith"
	}
	if p.AuthorEmail == "" {
		p.AuthorEmail = "sitesmith@" + cfg.Site.Domain
	}
	if p.Message == "" {
		p.Message = DefaultCommitMsg
	}
	return nil
}

// defaultAppliers run in order; publish depends on the site domain.
var defaultAppliers = []DefaultApplier{
	SiteDefaultApplier{},
	ContentDefaultApplier{},
	OutputDefaultApplier{},
	PublishDefaultApplier{},
}

// ApplyDefaults fills every unset field with its default.
func ApplyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("apply %s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}
