package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"
)

const (
	atomNS = "http://www.w3.org/2005/Atom"
	// feedSummaryLen caps entry summaries.
	feedSummaryLen = 300
)

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Xmlns   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	Links   []atomLink  `xml:"link"`
	Updated string      `xml:"updated"`
	ID      string      `xml:"id"`
	Author  atomAuthor  `xml:"author"`
	Entries []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	Title   string   `xml:"title"`
	Link    atomLink `xml:"link"`
	ID      string   `xml:"id"`
	Updated string   `xml:"updated"`
	Summary string   `xml:"summary"`
}

// FeedItem is one post offered to the feed, with its rendered page.
type FeedItem struct {
	Slug  string
	Title string
	Page  []byte
}

// Feed renders an Atom feed of items (already ordered newest first and
// limited by the caller). Summaries come from each page's first paragraph.
func Feed(brand, siteURL string, items []FeedItem, updated time.Time) ([]byte, error) {
	siteURL = strings.TrimRight(siteURL, "/")
	stamp := updated.UTC().Format(time.RFC3339)
	feed := atomFeed{
		Xmlns:   atomNS,
		Title:   brand,
		Links:   []atomLink{{Href: siteURL + "/feed.xml", Rel: "self"}, {Href: siteURL + "/"}},
		Updated: stamp,
		ID:      siteURL + "/",
		Author:  atomAuthor{Name: brand},
	}
	for _, it := range items {
		ex, err := ExtractText(it.Page)
		if err != nil {
			return nil, err
		}
		u := siteURL + "/posts/" + it.Slug + "/"
		feed.Entries = append(feed.Entries, atomEntry{
			Title:   it.Title,
			Link:    atomLink{Href: u},
			ID:      u,
			Updated: stamp,
			Summary: truncate(ex.FirstParagraph, feedSummaryLen),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
