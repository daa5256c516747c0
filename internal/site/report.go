package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitesmith/internal/slug"
)

// Report file names written into the output directory.
const (
	ReportJSONName = "build-report.json"
	ReportTextName = "build-report.txt"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// ReportIssueCode enumerates machine-parseable issue identifiers.
type ReportIssueCode string

const (
	IssueKeywordsUnreadable ReportIssueCode = "KEYWORDS_UNREADABLE"
	IssueFallbackContent    ReportIssueCode = "FALLBACK_CONTENT"
	IssueSlugCollision      ReportIssueCode = "SLUG_COLLISION"
	IssuePublishFailure     ReportIssueCode = "PUBLISH_FAILURE"
	IssueCanceled           ReportIssueCode = "BUILD_CANCELED"
	IssueGenericStageError  ReportIssueCode = "GENERIC_STAGE_ERROR"
)

// IssueSeverity represents normalized severity levels.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
	SeverityInfo    IssueSeverity = "info"
)

// ReportIssue is a structured entry describing a discrete problem encountered.
type ReportIssue struct {
	Code     ReportIssueCode `json:"code"`
	Stage    StageName       `json:"stage"`
	Severity IssueSeverity   `json:"severity"`
	Message  string          `json:"message"`
	Subject  string          `json:"subject,omitempty"`
}

// StageCount aggregates counts of outcomes for a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// BuildReport captures what one build did.
type BuildReport struct {
	SchemaVersion   int
	BuildID         string
	Start           time.Time
	End             time.Time
	Keywords        int
	Posts           int
	Fallbacks       int
	Files           int
	FilesByKind     map[string]int
	Collisions      []slug.Collision
	Fingerprints    map[string]string // slug -> content fingerprint
	Changed         []string          // slugs whose fingerprint differs from the previous build
	Errors          []error
	Warnings        []error
	Issues          []ReportIssue
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Outcome         BuildOutcome
	CommitHash      string
}

func newBuildReport(start time.Time) *BuildReport {
	return &BuildReport{
		SchemaVersion:   1,
		BuildID:         uuid.NewString(),
		Start:           start,
		FilesByKind:     map[string]int{},
		Fingerprints:    map[string]string{},
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

// AddIssue appends a structured issue and mirrors err into Errors or
// Warnings based on severity. Provide err=nil for informational issues.
func (r *BuildReport) AddIssue(code ReportIssueCode, stage StageName, severity IssueSeverity, subject, msg string, err error) {
	r.Issues = append(r.Issues, ReportIssue{Code: code, Stage: stage, Severity: severity, Message: msg, Subject: subject})
	if err == nil {
		return
	}
	switch severity {
	case SeverityError:
		r.Errors = append(r.Errors, err)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, err)
	case SeverityInfo:
	}
}

func (r *BuildReport) finish(end time.Time) {
	r.End = end
	r.deriveOutcome()
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("build=%s keywords=%d posts=%d fallbacks=%d files=%d collisions=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.BuildID, r.Keywords, r.Posts, r.Fallbacks, r.Files, len(r.Collisions), dur.Truncate(time.Millisecond),
		len(r.Errors), len(r.Warnings), r.Outcome)
}

// deriveOutcome sets the Outcome field based on recorded errors/warnings.
func (r *BuildReport) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// RecordPublish stores the outcome of committing the promoted output: the
// commit hash on success, a PUBLISH_FAILURE issue otherwise.
func (r *BuildReport) RecordPublish(dir, hash string, err error) {
	if err != nil {
		r.AddIssue(IssuePublishFailure, "", SeverityError, dir, err.Error(), err)
	} else {
		r.CommitHash = hash
	}
	r.deriveOutcome()
}

// diffFingerprints records which posts are new or changed relative to prev.
func (r *BuildReport) diffFingerprints(prev map[string]string) {
	r.Changed = nil
	for s, fp := range r.Fingerprints {
		if prev[s] != fp {
			r.Changed = append(r.Changed, s)
		}
	}
	sort.Strings(r.Changed)
}

// Persist writes build-report.json and build-report.txt atomically into root.
func (r *BuildReport) Persist(root string) error {
	if r.End.IsZero() {
		r.finish(time.Now())
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return fmt.Errorf("ensure root for report: %w", err)
	}
	jb, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := writeAtomic(filepath.Join(root, ReportJSONName), jb); err != nil {
		return fmt.Errorf("write report json: %w", err)
	}
	if err := writeAtomic(filepath.Join(root, ReportTextName), []byte(r.Summary()+"\n")); err != nil {
		return fmt.Errorf("write report summary: %w", err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	// #nosec G306 -- the report is served alongside the site.
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// BuildReportSerializable mirrors BuildReport with string errors for JSON output.
type BuildReportSerializable struct {
	SchemaVersion   int                      `json:"schema_version"`
	BuildID         string                   `json:"build_id"`
	Start           time.Time                `json:"start"`
	End             time.Time                `json:"end"`
	Keywords        int                      `json:"keywords"`
	Posts           int                      `json:"posts"`
	Fallbacks       int                      `json:"fallbacks"`
	Files           int                      `json:"files"`
	FilesByKind     map[string]int           `json:"files_by_kind"`
	Collisions      []slug.Collision         `json:"collisions"`
	Fingerprints    map[string]string        `json:"fingerprints"`
	Changed         []string                 `json:"changed"`
	Errors          []string                 `json:"errors"`
	Warnings        []string                 `json:"warnings"`
	Issues          []ReportIssue            `json:"issues"`
	StageDurations  map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds map[string]string        `json:"stage_error_kinds"`
	StageCounts     map[string]StageCount    `json:"stage_counts"`
	Outcome         string                   `json:"outcome"`
	CommitHash      string                   `json:"commit_hash,omitempty"`
}

func (r *BuildReport) serializable() *BuildReportSerializable {
	stageCounts := make(map[string]StageCount, len(r.StageCounts))
	for k, v := range r.StageCounts {
		stageCounts[string(k)] = v
	}
	kinds := make(map[string]string, len(r.StageErrorKinds))
	for k, v := range r.StageErrorKinds {
		kinds[string(k)] = string(v)
	}
	s := &BuildReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		BuildID:         r.BuildID,
		Start:           r.Start,
		End:             r.End,
		Keywords:        r.Keywords,
		Posts:           r.Posts,
		Fallbacks:       r.Fallbacks,
		Files:           r.Files,
		FilesByKind:     r.FilesByKind,
		Collisions:      nonNil(r.Collisions),
		Fingerprints:    r.Fingerprints,
		Changed:         nonNil(r.Changed),
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		Issues:          nonNil(r.Issues),
		StageDurations:  r.StageDurations,
		StageErrorKinds: kinds,
		StageCounts:     stageCounts,
		Outcome:         string(r.Outcome),
		CommitHash:      r.CommitHash,
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	return s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// loadPreviousFingerprints reads the fingerprints recorded by the last
// persisted report in dir. A missing or unreadable report yields nil.
func loadPreviousFingerprints(dir string) map[string]string {
	data, err := os.ReadFile(filepath.Join(dir, ReportJSONName))
	if err != nil {
		return nil
	}
	var prev struct {
		Fingerprints map[string]string `json:"fingerprints"`
	}
	if json.Unmarshal(data, &prev) != nil {
		return nil
	}
	return prev.Fingerprints
}
