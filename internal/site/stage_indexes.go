package site

import (
	"context"

	"git.home.luguber.info/inful/sitesmith/internal/config"
	"git.home.luguber.info/inful/sitesmith/internal/render"
	"git.home.luguber.info/inful/sitesmith/internal/taxonomy"
)

func stageSitemap(_ context.Context, bs *BuildState) error {
	siteURL := bs.Renderer.Site().URL
	names := make([]string, 0, len(bs.Pages))
	for _, p := range bs.Pages {
		names = append(names, p.Name)
	}
	urls := render.SitemapURLs(siteURL, bs.Metas, names)
	sm, err := render.Sitemap(urls, bs.Builder.now().UTC().Format("2006-01-02"))
	if err != nil {
		return newFatalStageError(StageSitemap, err)
	}
	if err := bs.write("sitemap.xml", "sitemap", sm); err != nil {
		return newFatalStageError(StageSitemap, err)
	}
	if err := bs.write("robots.txt", "sitemap", render.Robots(siteURL)); err != nil {
		return newFatalStageError(StageSitemap, err)
	}
	return nil
}

func stageSearch(_ context.Context, bs *BuildState) error {
	prefix := bs.Renderer.Site().BasePrefix
	entries := make([]render.SearchEntry, 0, len(bs.Metas))
	for _, m := range bs.Metas {
		e, err := render.NewSearchEntry(prefix, m, bs.PostPages[m.Slug])
		if err != nil {
			return newFatalStageError(StageSearch, err)
		}
		entries = append(entries, e)
	}
	idx, err := render.SearchIndex(entries)
	if err != nil {
		return newFatalStageError(StageSearch, err)
	}
	if err := bs.write("search.json", "search", idx); err != nil {
		return newFatalStageError(StageSearch, err)
	}
	return nil
}

func stageFeed(_ context.Context, bs *BuildState) error {
	newest := taxonomy.Reverse(bs.Metas)
	size := bs.Builder.cfg.Site.FeedSize
	if size <= 0 {
		size = config.DefaultFeedSize
	}
	newest = newest[:min(len(newest), size)]
	items := make([]render.FeedItem, 0, len(newest))
	for _, m := range newest {
		items = append(items, render.FeedItem{Slug: m.Slug, Title: m.Title, Page: bs.PostPages[m.Slug]})
	}
	site := bs.Renderer.Site()
	feed, err := render.Feed(site.Brand, site.URL, items, bs.Builder.now())
	if err != nil {
		return newFatalStageError(StageFeed, err)
	}
	if err := bs.write("feed.xml", "feed", feed); err != nil {
		return newFatalStageError(StageFeed, err)
	}
	return nil
}

func stageAssets(_ context.Context, bs *BuildState) error {
	for _, a := range render.Assets() {
		if err := bs.write(a.Path, "asset", a.Body); err != nil {
			return newFatalStageError(StageAssets, err)
		}
	}
	return nil
}
