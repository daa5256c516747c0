package site

import (
	"context"
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitesmith/internal/content"
	"git.home.luguber.info/inful/sitesmith/internal/paginate"
	"git.home.luguber.info/inful/sitesmith/internal/render"
	"git.home.luguber.info/inful/sitesmith/internal/taxonomy"
)

const cardWidth, cardHeight = 600, 338

// homeNav are the hero buttons on every home page; URLs are relative to the base prefix.
var homeNav = []render.NavLink{
	{Title: "About", URL: "/about.html"},
	{Title: "Contact", URL: "/contact.html"},
	{Title: "Privacy", URL: "/privacy.html"},
	{Title: "Disclosure", URL: "/disclosure.html"},
}

func stagePages(_ context.Context, bs *BuildState) error {
	for _, p := range bs.Pages {
		out, err := bs.Renderer.Static(p)
		if err != nil {
			return newFatalStageError(StagePages, err)
		}
		if err := bs.write(p.Name+".html", "page", out); err != nil {
			return newFatalStageError(StagePages, err)
		}
	}
	out, err := bs.Renderer.NotFound()
	if err != nil {
		return newFatalStageError(StagePages, err)
	}
	if err := bs.write("404.html", "page", out); err != nil {
		return newFatalStageError(StagePages, err)
	}
	return nil
}

func stageTaxonomies(_ context.Context, bs *BuildState) error {
	bs.Categories = taxonomy.ByCategory(bs.Metas)
	bs.Tags = taxonomy.ByTag(bs.Metas)
	for _, groups := range [][]taxonomy.Group{bs.Categories, bs.Tags} {
		for _, g := range groups {
			if err := writeListing(bs, g); err != nil {
				return newFatalStageError(StageTaxonomies, err)
			}
		}
	}
	return nil
}

func writeListing(bs *BuildState, g taxonomy.Group) error {
	prefix := bs.Renderer.Site().BasePrefix
	kind := string(g.Kind)
	for _, pg := range paginate.Pages(g.Newest(), bs.Builder.cfg.Site.PageSize) {
		out, err := bs.Renderer.Listing(render.ListingPage{
			Group:      g,
			Posts:      pg.Items,
			Pagination: paginate.Links(prefix, g.BasePath(), pg.Page, pg.Total),
			Page:       pg.Page,
		})
		if err != nil {
			return err
		}
		if err := bs.write(paginate.OutputPath(g.BasePath(), pg.Page), kind, out); err != nil {
			return err
		}
	}
	return nil
}

func stageHome(_ context.Context, bs *BuildState) error {
	prefix := bs.Renderer.Site().BasePrefix
	nav := make([]render.NavLink, 0, len(homeNav))
	for _, n := range homeNav {
		nav = append(nav, render.NavLink{Title: n.Title, URL: prefix + n.URL})
	}

	for _, pg := range paginate.Pages(taxonomy.Reverse(bs.Metas), bs.Builder.cfg.Site.PageSize) {
		cards := make([]render.Card, 0, len(pg.Items))
		for _, m := range pg.Items {
			mapped, _ := bs.Builder.images.Lookup(m.Slug, "")
			cards = append(cards, render.Card{Post: m, Image: render.TopicImage(m.Title, m.Title, mapped, cardWidth, cardHeight)})
		}
		out, err := bs.Renderer.Home(render.HomePage{
			Cards:      cards,
			Pagination: paginate.Links(prefix, "", pg.Page, pg.Total),
			Categories: bs.Categories,
			Tags:       bs.Tags,
			Nav:        nav,
			Page:       pg.Page,
		})
		if err != nil {
			return newFatalStageError(StageHome, err)
		}
		if err := bs.write(paginate.OutputPath("", pg.Page), "home", out); err != nil {
			return newFatalStageError(StageHome, err)
		}
	}
	return nil
}

func stageArchive(_ context.Context, bs *BuildState) error {
	all := byTitle(bs.Metas)
	cats := make([]taxonomy.Group, len(bs.Categories))
	for i, g := range bs.Categories {
		g.Posts = byTitle(g.Posts)
		cats[i] = g
	}
	sort.SliceStable(cats, func(i, j int) bool {
		return strings.ToLower(cats[i].Name) < strings.ToLower(cats[j].Name)
	})
	out, err := bs.Renderer.Archive(render.ArchivePage{All: all, Categories: cats})
	if err != nil {
		return newFatalStageError(StageArchive, err)
	}
	if err := bs.write("archive.html", "archive", out); err != nil {
		return newFatalStageError(StageArchive, err)
	}
	return nil
}

// byTitle returns a copy of posts sorted case-insensitively by title.
func byTitle(posts []content.Meta) []content.Meta {
	out := make([]content.Meta, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out
}
