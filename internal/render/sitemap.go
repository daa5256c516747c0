package render

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitesmith/internal/content"
	"git.home.luguber.info/inful/sitesmith/internal/slug"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SitemapURLs lists every public URL in sitemap order: home, posts in build
// order, categories and tags sorted by name, the archive, static pages and
// the feed.
func SitemapURLs(siteURL string, posts []content.Meta, pages []string) []string {
	siteURL = strings.TrimRight(siteURL, "/")
	urls := []string{siteURL + "/"}
	for _, p := range posts {
		urls = append(urls, siteURL+"/posts/"+p.Slug+"/")
	}

	cats := map[string]struct{}{}
	tags := map[string]struct{}{}
	for _, p := range posts {
		if c := strings.TrimSpace(p.Category); c != "" {
			cats[slug.Make(c)] = struct{}{}
		}
		for _, t := range p.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags[slug.Make(t)] = struct{}{}
			}
		}
	}
	for _, s := range sortedKeys(cats) {
		urls = append(urls, siteURL+"/category/"+s+"/")
	}
	for _, s := range sortedKeys(tags) {
		urls = append(urls, siteURL+"/tag/"+s+"/")
	}

	urls = append(urls, siteURL+"/archive.html")
	for _, name := range pages {
		urls = append(urls, siteURL+"/"+name+".html")
	}
	return append(urls, siteURL+"/feed.xml")
}

// Sitemap encodes urls as a sitemaps.org urlset. lastmod is applied to every
// entry when non-empty.
func Sitemap(urls []string, lastmod string) ([]byte, error) {
	set := urlset{Xmlns: sitemapNS, URLs: make([]sitemapURL, 0, len(urls))}
	for _, u := range urls {
		set.URLs = append(set.URLs, sitemapURL{Loc: u, LastMod: lastmod})
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots allows everything and points crawlers at the sitemap.
func Robots(siteURL string) []byte {
	return []byte("User-agent: *\nAllow: /\nSitemap: " + strings.TrimRight(siteURL, "/") + "/sitemap.xml\n")
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
