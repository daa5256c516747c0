package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("posts", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("posts", ResultSuccess)
	pr.IncStageResult("posts", ResultWarning)
	pr.IncBuildOutcome("success")
	pr.ObserveGenerateDuration("stub", time.Millisecond, false)
	pr.IncPagesWritten("post", 3)
	pr.IncPagesWritten("post", 0)
	pr.SetPosts(3)

	assert.InDelta(t, 1, testutil.ToFloat64(pr.stageResults.WithLabelValues("posts", "warning")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(pr.pagesWritten.WithLabelValues("post")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(pr.posts), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveStageDuration("posts", time.Second)
		pr.IncBuildOutcome("failed")
		pr.SetPosts(1)
	})
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome("success")
	path := filepath.Join(t.TempDir(), "sitesmith.prom")

	require.NoError(t, pr.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `sitesmith_build_outcomes_total{outcome="success"} 1`))
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("x", time.Second)
	r.IncPagesWritten("x", 1)
}
