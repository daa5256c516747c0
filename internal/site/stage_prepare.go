package site

import (
	"context"
	"log/slog"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
	"git.home.luguber.info/inful/sitesmith/internal/keywords"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
	"git.home.luguber.info/inful/sitesmith/internal/render"
)

// tagline is shown under the brand in the home page hero.
const tagline = "Fresh, helpful articles, generated automatically."

func stagePrepare(_ context.Context, bs *BuildState) error {
	cfg := bs.Builder.cfg

	list, err := keywords.Load(cfg.Content.KeywordsFile)
	if err != nil {
		bs.Report.AddIssue(IssueKeywordsUnreadable, StagePrepare, SeverityWarning,
			cfg.Content.KeywordsFile, err.Error(), err)
	}
	bs.Keywords = keywords.Limit(list, cfg.Content.Limit)
	bs.Report.Keywords = len(bs.Keywords)
	slog.Info("Loaded keywords", logfields.Path(cfg.Content.KeywordsFile), logfields.Count(len(bs.Keywords)))

	r, err := render.New(render.Site{
		Brand:      cfg.Site.Brand,
		Tagline:    tagline,
		URL:        cfg.SiteURL(),
		BasePrefix: cfg.BasePrefix(),
		Theme:      render.ResolveTheme(cfg.Site.Theme),
		Analytics:  render.Analytics(cfg.Site.Analytics),
		AmazonTag:  cfg.Site.AmazonTag,
		Year:       bs.Builder.now().Year(),
	}, render.WithMinify(cfg.Output.Minify))
	if err != nil {
		return newFatalStageError(StagePrepare, serrors.InternalError("parse page templates", err))
	}
	bs.Renderer = r

	standard, err := render.StandardPages(render.PageValues{
		Brand:    cfg.Site.Brand,
		Audience: cfg.Site.Audience,
		Domain:   cfg.Site.Domain,
	})
	if err != nil {
		return newFatalStageError(StagePrepare, err)
	}
	overrides, err := render.LoadPageOverrides(cfg.Content.PagesDir)
	if err != nil {
		return newFatalStageError(StagePrepare, err)
	}
	bs.Pages = render.MergePages(standard, overrides)
	return nil
}
