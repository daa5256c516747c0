package site

import (
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitesmith/internal/content"
)

type fingerprintMeta struct {
	Keyword  string   `yaml:"keyword"`
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Fallback bool     `yaml:"fallback,omitempty"`
}

// fingerprint hashes a post's metadata (as YAML front matter) and its
// Markdown-equivalent body, so unchanged content yields the same value
// across builds.
func fingerprint(rec content.Record) (string, error) {
	fm, err := yaml.Marshal(fingerprintMeta{
		Keyword:  rec.Keyword,
		Title:    rec.Title,
		Category: rec.Category,
		Tags:     rec.Tags,
		Fallback: rec.Fallback,
	})
	if err != nil {
		return "", err
	}
	return mdfp.CalculateFingerprintFromParts(string(fm), recordBody(rec)), nil
}

func recordBody(rec content.Record) string {
	var b strings.Builder
	b.WriteString("# " + rec.Title + "\n\n")
	if rec.Summary != "" {
		b.WriteString(rec.Summary + "\n\n")
	}
	for _, s := range rec.Sections {
		b.WriteString("## " + s.Heading + "\n\n")
		for _, p := range s.Paragraphs {
			b.WriteString(p + "\n\n")
		}
	}
	for _, f := range rec.FAQ {
		b.WriteString("### " + f.Question + "\n\n" + f.Answer + "\n\n")
	}
	if rec.ProductName != "" {
		b.WriteString(rec.ProductName + ": " + rec.ProductBlurb + "\n\n")
	}
	for _, c := range rec.Comparison {
		b.WriteString("- " + c.Name + " (" + c.ASIN + "): " + c.Blurb + "\n")
	}
	for _, s := range rec.Sources {
		b.WriteString("- [" + s.Title + "](" + s.URL + ")\n")
	}
	return b.String()
}
