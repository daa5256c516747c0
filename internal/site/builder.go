// Package site runs the build pipeline that turns keywords into a static
// site: content generation, rendering and atomic promotion of the output.
package site

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitesmith/internal/config"
	"git.home.luguber.info/inful/sitesmith/internal/content"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
	"git.home.luguber.info/inful/sitesmith/internal/metrics"
)

// Builder builds the site described by one configuration.
type Builder struct {
	cfg      *config.Config
	gen      content.Generator
	recorder metrics.Recorder
	images   config.ImageMap
	now      func() time.Time
	stages   []StageDef
}

// Option configures a Builder.
type Option func(*Builder)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithImageMap supplies per-post hero images keyed by slug or keyword.
func WithImageMap(m config.ImageMap) Option {
	return func(b *Builder) { b.images = m }
}

// WithClock overrides the time source used for post dates and report stamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder returns a builder for cfg that obtains post records from gen.
func NewBuilder(cfg *config.Config, gen content.Generator, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		gen:      gen,
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
		stages:   defaultStages(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build runs every stage into a staging directory and promotes it to the
// configured output directory. On error the previous output is left
// untouched and the returned report describes how far the build got.
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	start := b.now()
	report := newBuildReport(start)
	out := b.cfg.Output.Directory
	log := slog.With(logfields.BuildID(report.BuildID))
	log.Info("Starting build", logfields.Path(out), logfields.Generator(b.gen.Name()))

	prev := loadPreviousFingerprints(out)

	stageDir, err := beginStaging(out)
	if err != nil {
		report.Errors = append(report.Errors, err)
		return b.done(report, start), err
	}

	bs := newBuildState(b, report, stageDir)
	if err := runStages(ctx, bs, b.stages); err != nil {
		abortStaging(stageDir)
		log.Error("Build failed", logfields.Error(err))
		return b.done(report, start), err
	}

	report.diffFingerprints(prev)
	if err := finalizeStaging(stageDir, out); err != nil {
		abortStaging(stageDir)
		report.Errors = append(report.Errors, err)
		return b.done(report, start), err
	}

	b.done(report, start)
	if b.cfg.Output.Report {
		if err := report.Persist(out); err != nil {
			log.Warn("Failed to persist build report", logfields.Error(err))
		}
	}
	log.Info("Build complete", slog.String("summary", report.Summary()), logfields.Outcome(string(report.Outcome)))
	return report, nil
}

func (b *Builder) done(report *BuildReport, start time.Time) *BuildReport {
	report.finish(b.now())
	b.recorder.ObserveBuildDuration(report.End.Sub(start))
	b.recorder.IncBuildOutcome(string(report.Outcome))
	b.recorder.SetPosts(report.Posts)
	return report
}
