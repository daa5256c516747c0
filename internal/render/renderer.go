// Package render turns post records and indexes into the files of the
// generated site: HTML pages from embedded html/template templates plus the
// sitemap, robots file, search index, Atom feed and static assets.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"git.home.luguber.info/inful/sitesmith/internal/content"
	"git.home.luguber.info/inful/sitesmith/internal/markdown"
	"git.home.luguber.info/inful/sitesmith/internal/paginate"
	"git.home.luguber.info/inful/sitesmith/internal/slug"
	"git.home.luguber.info/inful/sitesmith/internal/taxonomy"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Template names, one per page kind.
const (
	tplHome     = "home"
	tplPost     = "post"
	tplListing  = "listing"
	tplPage     = "page"
	tplArchive  = "archive"
	tplNotFound = "notfound"
)

// Site carries the values every page shares.
type Site struct {
	Brand      string
	Tagline    string
	URL        string // absolute, no trailing slash
	BasePrefix string // URL path the site is served under, "" at a domain root
	Theme      Theme
	Analytics  template.HTML
	AmazonTag  string
	Year       int
}

// Renderer executes the embedded page templates for one site.
type Renderer struct {
	site   Site
	pages  map[string]*template.Template
	minify bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMinify collapses insignificant whitespace in rendered HTML.
func WithMinify(enabled bool) Option {
	return func(r *Renderer) { r.minify = enabled }
}

// New parses the embedded templates for site.
func New(site Site, opts ...Option) (*Renderer, error) {
	site.URL = strings.TrimRight(site.URL, "/")
	site.BasePrefix = strings.TrimRight(site.BasePrefix, "/")
	r := &Renderer{site: site, pages: map[string]*template.Template{}}
	for _, o := range opts {
		o(r)
	}

	base, err := template.New("base").Funcs(r.funcs()).ParseFS(templateFS, "templates/base.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}
	for _, name := range []string{tplHome, tplPost, tplListing, tplPage, tplArchive, tplNotFound} {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base template: %w", err)
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Site returns the shared site values.
func (r *Renderer) Site() Site { return r.site }

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"postURL":     func(s string) string { return PostURL(r.site.BasePrefix, s) },
		"categoryURL": func(name string) string { return CategoryURL(r.site.BasePrefix, name) },
		"tagURL":      func(name string) string { return TagURL(r.site.BasePrefix, name) },
		"amazonURL":   func(asin string) string { return AmazonURL(asin, r.site.AmazonTag) },
		"slugify":     slug.Make,
		"inline":      markdown.Inline,
		"join":        strings.Join,
		"isWebURL": func(u string) bool {
			u = strings.ToLower(strings.TrimSpace(u))
			return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
		},
	}
}

// view is the root value handed to every template.
type view struct {
	Site        Site
	Title       string
	Heading     string
	Description string
	Canonical   string
	Data        any
}

func (r *Renderer) execute(name string, v view) ([]byte, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", name)
	}
	v.Site = r.site
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", v); err != nil {
		return nil, fmt.Errorf("execute %s template: %w", name, err)
	}
	if r.minify {
		return Minify(buf.Bytes())
	}
	return buf.Bytes(), nil
}

// NavLink is a button in the home page hero.
type NavLink struct {
	Title string
	URL   string
}

// Card is a post teaser on the home page.
type Card struct {
	Post  content.Meta
	Image Image
}

// HomePage is one page of the paginated home listing.
type HomePage struct {
	Cards      []Card
	Pagination []paginate.Link
	Categories []taxonomy.Group
	Tags       []taxonomy.Group
	Nav        []NavLink
	Page       int
}

// Home renders a home listing page.
func (r *Renderer) Home(p HomePage) ([]byte, error) {
	canonical := r.site.URL + "/"
	if p.Page > 1 {
		canonical = r.site.URL + strings.TrimPrefix(paginate.PageURL(r.site.BasePrefix, "", p.Page), r.site.BasePrefix)
	}
	title := r.site.Brand + " — Blog"
	if p.Page > 1 {
		title = fmt.Sprintf("%s — Page %d", r.site.Brand, p.Page)
	}
	return r.execute(tplHome, view{
		Title:       title,
		Description: r.site.Tagline,
		Canonical:   canonical,
		Data:        p,
	})
}

// PostPage is everything the post template needs beyond the record.
type PostPage struct {
	Post         content.Record
	Date         string
	Hero         Image
	InText       []content.Meta
	Related      []content.Meta
	ProductName  string
	ProductBlurb string
	ProductURL   string
	Schema       map[string]any
}

// Post renders a post page. Missing product fields fall back to the
// generic top pick.
func (r *Renderer) Post(p PostPage) ([]byte, error) {
	rec := p.Post
	if p.ProductName == "" {
		p.ProductName = firstNonEmpty(rec.ProductName, "Our Pick")
	}
	if p.ProductBlurb == "" {
		p.ProductBlurb = firstNonEmpty(rec.ProductBlurb, "Solid choice for most.")
	}
	if p.ProductURL == "" {
		asin := ""
		if len(rec.Comparison) > 0 {
			asin = rec.Comparison[0].ASIN
		}
		p.ProductURL = AmazonURL(asin, r.site.AmazonTag)
	}
	canonical := r.site.URL + "/posts/" + rec.Slug + "/"
	if p.Schema == nil {
		p.Schema = ArticleSchema(rec, canonical, p.Date, r.site.Brand, p.Hero.Src)
	}
	return r.execute(tplPost, view{
		Title:       rec.Title + " — " + r.site.Brand,
		Description: rec.MetaDescription,
		Canonical:   canonical,
		Data:        p,
	})
}

// ArticleSchema is the schema.org Article JSON-LD for a post.
func ArticleSchema(rec content.Record, canonical, date, publisher, image string) map[string]any {
	schema := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "Article",
		"headline":         rec.Title,
		"description":      rec.MetaDescription,
		"mainEntityOfPage": canonical,
		"datePublished":    date,
		"author":           map[string]any{"@type": "Person", "name": rec.Author.Name},
		"publisher":        map[string]any{"@type": "Organization", "name": publisher},
	}
	if image != "" {
		schema["image"] = image
	}
	if len(rec.Tags) > 0 {
		schema["keywords"] = strings.Join(rec.Tags, ", ")
	}
	return schema
}

// ListingPage is one page of a category or tag listing.
type ListingPage struct {
	Group      taxonomy.Group
	Posts      []content.Meta
	Pagination []paginate.Link
	Page       int
}

type listingData struct {
	Label      string
	Posts      []content.Meta
	Pagination []paginate.Link
}

// Listing renders a category or tag listing page.
func (r *Renderer) Listing(p ListingPage) ([]byte, error) {
	label, kindTitle := p.Group.Name, "Category"
	if p.Group.Kind == taxonomy.KindTag {
		label, kindTitle = "Tag: "+p.Group.Name, "Tag"
	}
	title := p.Group.Name + " — " + kindTitle
	return r.execute(tplListing, view{
		Title:     title + " — " + r.site.Brand,
		Heading:   title,
		Canonical: r.site.URL + strings.TrimPrefix(paginate.PageURL(r.site.BasePrefix, p.Group.BasePath(), p.Page), r.site.BasePrefix),
		Data:      listingData{Label: label, Posts: p.Posts, Pagination: p.Pagination},
	})
}

// ArchivePage lists every post A–Z and grouped by category.
type ArchivePage struct {
	All        []content.Meta
	Categories []taxonomy.Group
}

// Archive renders archive.html.
func (r *Renderer) Archive(p ArchivePage) ([]byte, error) {
	return r.execute(tplArchive, view{
		Title:     "Archive — " + r.site.Brand,
		Heading:   "Archive",
		Canonical: r.site.URL + "/archive.html",
		Data:      p,
	})
}

// StaticPage is a standalone page written to <Name>.html.
type StaticPage struct {
	Name        string
	Title       string
	Description string
	Body        template.HTML
}

// Static renders a standalone page.
func (r *Renderer) Static(p StaticPage) ([]byte, error) {
	return r.execute(tplPage, view{
		Title:       p.Title + " — " + r.site.Brand,
		Heading:     p.Title,
		Description: p.Description,
		Canonical:   r.site.URL + "/" + p.Name + ".html",
		Data:        p,
	})
}

// NotFound renders 404.html.
func (r *Renderer) NotFound() ([]byte, error) {
	return r.execute(tplNotFound, view{Title: "Not found — " + r.site.Brand})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
