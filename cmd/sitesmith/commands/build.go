package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/sitesmith/internal/config"
	"git.home.luguber.info/inful/sitesmith/internal/content"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
	"git.home.luguber.info/inful/sitesmith/internal/metrics"
	"git.home.luguber.info/inful/sitesmith/internal/publish"
	"git.home.luguber.info/inful/sitesmith/internal/site"
	"git.home.luguber.info/inful/sitesmith/internal/watch"
)

// Run builds the site once and, with --watch, keeps rebuilding on input
// changes until ctx is canceled.
func (c *CLI) Run(ctx context.Context) error {
	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	var prom *metrics.PrometheusRecorder
	if cfg.Output.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
	}

	if err := c.build(ctx, cfg, prom); err != nil && !c.Watch {
		return err
	}
	if !c.Watch {
		return nil
	}

	w, err := watch.New([]string{cfg.Content.KeywordsFile, c.Config, cfg.Content.PagesDir, cfg.Content.ImagesFile}, 0,
		func(ctx context.Context) error {
			// Configuration is re-read so edits to the config file apply.
			next, err := c.LoadConfig()
			if err != nil {
				return err
			}
			return c.build(ctx, next, prom)
		})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// reportFiles are kept out of published commits; they change on every build.
var reportFiles = []string{"/" + site.ReportJSONName, "/" + site.ReportTextName}

// build runs one build, then publishes and writes metrics as configured.
func (c *CLI) build(ctx context.Context, cfg *config.Config, prom *metrics.PrometheusRecorder) error {
	gen, err := NewGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	images, err := config.LoadImageMap(cfg.Content.ImagesFile)
	if err != nil {
		return err
	}

	opts := []site.Option{site.WithImageMap(images)}
	if prom != nil {
		opts = append(opts, site.WithRecorder(prom))
	}
	report, buildErr := site.NewBuilder(cfg, gen, opts...).Build(ctx)

	if buildErr == nil && cfg.Publish.Enabled {
		res, err := publish.Commit(cfg.Output.Directory, publish.Options{
			AuthorName:  cfg.Publish.AuthorName,
			AuthorEmail: cfg.Publish.AuthorEmail,
			Message:     cfg.Publish.Message,
			Exclude:     reportFiles,
		})
		report.RecordPublish(cfg.Output.Directory, res.Hash, err)
		if err != nil {
			buildErr = err
		}
		if cfg.Output.Report {
			if err := report.Persist(cfg.Output.Directory); err != nil {
				slog.Warn("Failed to persist build report", logfields.Path(cfg.Output.Directory), logfields.Error(err))
			}
		}
	}

	if prom != nil {
		if err := prom.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.Output.MetricsFile), logfields.Error(err))
		}
	}
	if report != nil && buildErr == nil {
		slog.Info("Site ready", logfields.Path(cfg.Output.Directory), logfields.Count(report.Posts),
			logfields.Outcome(string(report.Outcome)))
	}
	return buildErr
}

// NewGenerator returns the content generator named by the configuration.
func NewGenerator(ctx context.Context, cfg *config.Config) (content.Generator, error) {
	if cfg.Content.Generator == config.GeneratorGenAI {
		return content.NewGenAIGenerator(ctx, cfg.ResolveAPIKey(), cfg.Content.Model, cfg.Site.Audience)
	}
	return content.StubGenerator{}, nil
}
