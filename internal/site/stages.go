package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
	"git.home.luguber.info/inful/sitesmith/internal/content"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
	"git.home.luguber.info/inful/sitesmith/internal/metrics"
	"git.home.luguber.info/inful/sitesmith/internal/render"
	"git.home.luguber.info/inful/sitesmith/internal/taxonomy"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state across stages of one build.
type BuildState struct {
	Builder  *Builder
	Report   *BuildReport
	Renderer *render.Renderer
	StageDir string

	Keywords   []string
	Posts      []content.Record
	Metas      []content.Meta
	PostPages  map[string][]byte // slug -> rendered post
	Categories []taxonomy.Group
	Tags       []taxonomy.Group
	Pages      []render.StaticPage

	Timings map[StageName]time.Duration
}

func newBuildState(b *Builder, report *BuildReport, stageDir string) *BuildState {
	return &BuildState{
		Builder:   b,
		Report:    report,
		StageDir:  stageDir,
		PostPages: map[string][]byte{},
		Timings:   make(map[StageName]time.Duration),
	}
}

// write stores data at the slash-separated path rel inside the staging
// directory and counts it under kind.
func (bs *BuildState) write(rel, kind string, data []byte) error {
	p := filepath.Join(bs.StageDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return serrors.WriteFailed(rel, err)
	}
	// #nosec G306 -- generated site files are world-readable.
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return serrors.WriteFailed(rel, err)
	}
	bs.Report.Files++
	bs.Report.FilesByKind[kind]++
	bs.Builder.recorder.IncPagesWritten(kind, 1)
	slog.Debug("Wrote file", logfields.Path(rel))
	return nil
}

// runStages executes stages in order, recording timing and stopping on first fatal error.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	rec := bs.Builder.recorder
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.AddIssue(IssueCanceled, st.Name, SeverityError, "", se.Error(), nil)
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
		}
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Timings[st.Name] = dur
		bs.Report.StageDurations[string(st.Name)] = dur
		rec.ObserveStageDuration(string(st.Name), dur)
		slog.Debug("Stage finished", logfields.BuildID(bs.Report.BuildID), logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))

		if err == nil {
			sc := bs.Report.StageCounts[st.Name]
			sc.Success++
			bs.Report.StageCounts[st.Name] = sc
			rec.IncStageResult(string(st.Name), metrics.ResultSuccess)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.Name, err)
		}
		bs.Report.StageErrorKinds[st.Name] = se.Kind
		sc := bs.Report.StageCounts[st.Name]
		switch se.Kind {
		case StageErrorWarning:
			sc.Warning++
			bs.Report.StageCounts[st.Name] = sc
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			rec.IncStageResult(string(st.Name), metrics.ResultWarning)
			slog.Warn("Stage completed with warnings", logfields.Stage(string(st.Name)), logfields.Error(se.Err))
			continue
		case StageErrorCanceled:
			sc.Canceled++
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			bs.Report.AddIssue(IssueCanceled, st.Name, SeverityError, "", se.Error(), nil)
		default:
			sc.Fatal++
			rec.IncStageResult(string(st.Name), metrics.ResultFatal)
			bs.Report.AddIssue(IssueGenericStageError, st.Name, SeverityError, "", se.Error(), nil)
		}
		bs.Report.StageCounts[st.Name] = sc
		bs.Report.Errors = append(bs.Report.Errors, se)
		return se
	}
	return nil
}
