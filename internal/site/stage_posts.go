package site

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitesmith/internal/content"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
	"git.home.luguber.info/inful/sitesmith/internal/render"
	"git.home.luguber.info/inful/sitesmith/internal/slug"
)

const (
	inTextRelated = 3
	boxRelated    = 6

	heroWidth, heroHeight = 1200, 630
)

func stagePosts(ctx context.Context, bs *BuildState) error {
	b := bs.Builder
	reg := slug.NewRegistry()
	author := content.Author{
		Name: b.cfg.Site.Author.Name,
		Bio:  b.cfg.Site.Author.Bio,
		URL:  b.cfg.Site.Author.URL,
	}

	for _, kw := range bs.Keywords {
		if err := ctx.Err(); err != nil {
			return newCanceledStageError(StagePosts, err)
		}
		t0 := time.Now()
		rec, warn := content.Resolve(ctx, b.gen, kw)
		if ctx.Err() != nil {
			return newCanceledStageError(StagePosts, ctx.Err())
		}
		b.recorder.ObserveGenerateDuration(b.gen.Name(), time.Since(t0), warn != nil)
		rec.Keyword = kw
		rec.Slug = reg.Claim(kw)
		rec.Author = author
		if warn != nil {
			rec.Fallback = true
			bs.Report.Fallbacks++
			bs.Report.AddIssue(IssueFallbackContent, StagePosts, SeverityWarning, kw, warn.Error(), warn)
		}
		bs.Posts = append(bs.Posts, rec)
		bs.Metas = append(bs.Metas, rec.Meta())
	}

	bs.Report.Collisions = reg.Collisions()
	for _, c := range bs.Report.Collisions {
		slog.Warn("Slug collision resolved with suffix", logfields.Keyword(c.Source),
			logfields.Slug(c.Assigned), slog.String("wanted", c.Wanted))
		bs.Report.AddIssue(IssueSlugCollision, StagePosts, SeverityInfo, c.Source,
			"slug "+c.Wanted+" already taken, assigned "+c.Assigned, nil)
	}

	date := b.now().Format("2006-01-02")
	for i, rec := range bs.Posts {
		related := relatedPosts(bs.Metas, i)
		mapped, _ := b.images.Lookup(rec.Slug, rec.Keyword)
		topic := rec.Title
		if strings.TrimSpace(topic) == "" {
			topic = rec.Keyword
		}
		page, err := bs.Renderer.Post(render.PostPage{
			Post:    rec,
			Date:    date,
			Hero:    render.TopicImage(topic, rec.Title, mapped, heroWidth, heroHeight),
			InText:  related[:min(inTextRelated, len(related))],
			Related: related[:min(boxRelated, len(related))],
		})
		if err != nil {
			return newFatalStageError(StagePosts, err)
		}
		if err := bs.write("posts/"+rec.Slug+"/index.html", "post", page); err != nil {
			return newFatalStageError(StagePosts, err)
		}
		bs.PostPages[rec.Slug] = page

		fp, err := fingerprint(rec)
		if err != nil {
			slog.Warn("Failed to fingerprint post", logfields.Slug(rec.Slug), logfields.Error(err))
		} else {
			bs.Report.Fingerprints[rec.Slug] = fp
		}
		slog.Debug("Rendered post", logfields.Slug(rec.Slug), logfields.Category(rec.Category))
	}
	bs.Report.Posts = len(bs.Posts)
	return nil
}

// relatedPosts returns every other post in build order.
func relatedPosts(metas []content.Meta, self int) []content.Meta {
	out := make([]content.Meta, 0, len(metas))
	for i, m := range metas {
		if i != self {
			out = append(out, m)
		}
	}
	return out
}
