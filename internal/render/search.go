package render

import (
	"encoding/json"
	"strings"

	"git.home.luguber.info/inful/sitesmith/internal/content"
)

// searchSnippetLen caps the first-paragraph text stored per entry.
const searchSnippetLen = 500

// SearchEntry is one post in search.json.
type SearchEntry struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Text     string   `json:"text"`
}

// NewSearchEntry builds the index entry for a post from its rendered page.
func NewSearchEntry(basePrefix string, meta content.Meta, page []byte) (SearchEntry, error) {
	ex, err := ExtractText(page)
	if err != nil {
		return SearchEntry{}, err
	}
	text := strings.Join(ex.Headings, " ") + " " + truncate(ex.FirstParagraph, searchSnippetLen)
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	return SearchEntry{
		Slug:     meta.Slug,
		Title:    collapse(meta.Title),
		URL:      PostURL(basePrefix, meta.Slug),
		Category: meta.Category,
		Tags:     tags,
		Text:     collapse(text),
	}, nil
}

// SearchIndex encodes entries as a JSON array ([] when empty).
func SearchIndex(entries []SearchEntry) ([]byte, error) {
	if entries == nil {
		entries = []SearchEntry{}
	}
	return json.Marshal(entries)
}
