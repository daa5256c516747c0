package commands

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitesmith/internal/config"
	"git.home.luguber.info/inful/sitesmith/internal/content"
	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
	"git.home.luguber.info/inful/sitesmith/internal/site"
)

func parse(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("sitesmith"),
		kong.Exit(func(int) {}),
		kong.Writers(io.Discard, io.Discard),
		kong.Vars{"version": "test"},
	)
	require.NoError(t, err)
	_, err = parser.Parse(args)
	return &cli, err
}

func TestParse_SiteURLRequired(t *testing.T) {
	_, err := parse(t, "--brand", "Kitchen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--site-url")
}

func TestParse_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sitesmith.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`site:
  brand: From File
  url: https://file.example
  theme: pico
content:
  keywords_file: file.json
  limit: 7
output:
  directory: `+filepath.Join(dir, "out")+`
`), 0o600))

	cli, err := parse(t, "--site-url", "https://flag.example/blog", "-c", cfgPath,
		"--brand", "From Flag", "--limit", "2", "--minify", "--author-name", "Jo")
	require.NoError(t, err)

	cfg, err := cli.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example/blog", cfg.Site.URL)
	assert.Equal(t, "From Flag", cfg.Site.Brand)
	assert.Equal(t, "pico", cfg.Site.Theme)
	assert.Equal(t, "file.json", cfg.Content.KeywordsFile)
	assert.Equal(t, 2, cfg.Content.Limit)
	assert.True(t, cfg.Output.Minify)
	assert.Equal(t, "Jo", cfg.Site.Author.Name)
	assert.Equal(t, "/blog", cfg.BasePrefix())
}

func TestLoadConfig_InvalidURL(t *testing.T) {
	cli, err := parse(t, "--site-url", "ftp://nope")
	require.NoError(t, err)
	_, err = cli.LoadConfig()
	require.Error(t, err)
	assert.True(t, serrors.IsCategory(err, serrors.CategoryValidation) || serrors.IsCategory(err, serrors.CategoryConfig))
}

func TestNewGenerator(t *testing.T) {
	cfg := config.Default()
	gen, err := NewGenerator(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, content.StubGenerator{}, gen)
}

func TestRun_BuildsPublishesAndWritesMetrics(t *testing.T) {
	dir := t.TempDir()
	kw := filepath.Join(dir, "keywords.json")
	require.NoError(t, os.WriteFile(kw, []byte(`["air fryer","slow cooker"]`), 0o600))
	out := filepath.Join(dir, "site")
	metricsFile := filepath.Join(dir, "sitesmith.prom")

	cli, err := parse(t, "--site-url", "https://example.org", "--keywords-file", kw, "-o", out,
		"--report", "--publish", "--metrics-file", metricsFile)
	require.NoError(t, err)
	require.NoError(t, cli.Run(context.Background()))

	_, err = os.Stat(filepath.Join(out, "posts", "slow-cooker", "index.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "build-report.json"))
	require.NoError(t, err)

	repo, err := git.PlainOpen(out)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCommitMsg, commit.Message)
	_, err = commit.File(site.ReportJSONName)
	assert.Error(t, err, "report must stay out of the commit")
	_, err = commit.File("posts/slow-cooker/index.html")
	assert.NoError(t, err)

	persisted := readReport(t, out)
	assert.Equal(t, head.Hash().String(), persisted.CommitHash)
	assert.Equal(t, "success", persisted.Outcome)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `sitesmith_pages_written_total{kind="post"} 2`)
	assert.Contains(t, string(prom), "sitesmith_posts 2")

	// A second run keeps the repository and its history.
	require.NoError(t, cli.Run(context.Background()))
	repo, err = git.PlainOpen(out)
	require.NoError(t, err)
	_, err = repo.Head()
	require.NoError(t, err)
}

func readReport(t *testing.T, out string) site.BuildReportSerializable {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(out, site.ReportJSONName))
	require.NoError(t, err)
	var r site.BuildReportSerializable
	require.NoError(t, json.Unmarshal(data, &r))
	return r
}

func TestRun_PublishFailureIsRecordedInReport(t *testing.T) {
	dir := t.TempDir()
	kw := filepath.Join(dir, "keywords.json")
	require.NoError(t, os.WriteFile(kw, []byte(`["rice cooker"]`), 0o600))
	out := filepath.Join(dir, "site")
	require.NoError(t, os.MkdirAll(out, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(out, ".git"), []byte("not a repository\n"), 0o600))

	cli, err := parse(t, "--site-url", "https://example.org", "--keywords-file", kw, "-o", out,
		"--report", "--publish")
	require.NoError(t, err)
	err = cli.Run(context.Background())
	require.Error(t, err)
	assert.True(t, serrors.IsCategory(err, serrors.CategoryPublish))

	persisted := readReport(t, out)
	assert.Equal(t, "failed", persisted.Outcome)
	assert.Empty(t, persisted.CommitHash)
	require.NotEmpty(t, persisted.Issues)
	last := persisted.Issues[len(persisted.Issues)-1]
	assert.Equal(t, site.IssuePublishFailure, last.Code)
	assert.Equal(t, out, last.Subject)
	assert.NotEmpty(t, persisted.Errors)
}
