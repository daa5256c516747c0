package config

import (
	"net/url"
	"strings"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
)

// Validate checks the configuration after defaults and CLI overrides have
// been applied.
func Validate(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSite(); err != nil {
		return err
	}
	if err := cv.validateContent(); err != nil {
		return err
	}
	return cv.validateOutput()
}

func (cv *configurationValidator) validateSite() error {
	raw := strings.TrimSpace(cv.config.Site.URL)
	if raw == "" {
		return serrors.ConfigRequired("site.url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return serrors.ValidationFailed("site.url", err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return serrors.ValidationFailed("site.url", "scheme must be http or https")
	}
	if u.Host == "" {
		return serrors.ValidationFailed("site.url", "host is required")
	}
	if cv.config.Site.PageSize <= 0 {
		return serrors.ValidationFailed("site.page_size", "must be greater than zero")
	}
	if cv.config.Site.FeedSize <= 0 {
		return serrors.ValidationFailed("site.feed_size", "must be greater than zero")
	}
	for _, entry := range strings.Split(cv.config.Site.Analytics, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		provider, id, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(id) == "" {
			return serrors.ValidationFailed("site.analytics", "entries must look like provider:id")
		}
		switch strings.ToLower(strings.TrimSpace(provider)) {
		case "plausible", "ga4":
		default:
			return serrors.ValidationFailed("site.analytics", "unknown provider "+provider)
		}
	}
	return nil
}

func (cv *configurationValidator) validateContent() error {
	switch cv.config.Content.Generator {
	case GeneratorStub:
	case GeneratorGenAI:
		if cv.config.ResolveAPIKey() == "" {
			return serrors.ConfigRequired("content.api_key (or GEMINI_API_KEY)")
		}
	default:
		return serrors.ValidationFailed("content.generator", "must be stub or genai")
	}
	if strings.TrimSpace(cv.config.Content.KeywordsFile) == "" {
		return serrors.ConfigRequired("content.keywords_file")
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	dir := strings.TrimSpace(cv.config.Output.Directory)
	if dir == "" {
		return serrors.ConfigRequired("output.directory")
	}
	if dir == "/" || dir == "." {
		return serrors.ValidationFailed("output.directory", "refusing to replace "+dir)
	}
	return nil
}
