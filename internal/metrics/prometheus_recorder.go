package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitesmith"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry         *prom.Registry
	stageDuration    *prom.HistogramVec
	buildDuration    prom.Histogram
	stageResults     *prom.CounterVec
	buildOutcome     *prom.CounterVec
	generateDuration *prom.HistogramVec
	pagesWritten     *prom.CounterVec
	posts            prom.Gauge
}

// NewPrometheusRecorder constructs and registers the collectors on reg (a new
// registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.generateDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "generate_duration_seconds",
		Help:      "Duration of content generation per keyword",
		Buckets:   prom.ExponentialBuckets(0.001, 4, 10),
	}, []string{"generator", "result"})
	pr.pagesWritten = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "pages_written_total",
		Help:      "Output files written by kind",
	}, []string{"kind"})
	pr.posts = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "posts",
		Help:      "Posts rendered by the last build",
	})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.generateDuration, pr.pagesWritten, pr.posts)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveGenerateDuration(generator string, d time.Duration, fallback bool) {
	if p == nil || p.generateDuration == nil {
		return
	}
	res := "success"
	if fallback {
		res = "fallback"
	}
	p.generateDuration.WithLabelValues(generator, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPagesWritten(kind string, n int) {
	if p == nil || p.pagesWritten == nil || n <= 0 {
		return
	}
	p.pagesWritten.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) SetPosts(n int) {
	if p == nil || p.posts == nil {
		return
	}
	p.posts.Set(float64(n))
}

// WriteTextfile writes the recorder's registry to path in the Prometheus text
// exposition format (atomically, via a temporary file).
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}
