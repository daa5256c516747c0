package render

import (
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
	"git.home.luguber.info/inful/sitesmith/internal/frontmatter"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
	"git.home.luguber.info/inful/sitesmith/internal/markdown"
	"git.home.luguber.info/inful/sitesmith/internal/slug"
)

// StandardPageNames are always generated, in sitemap order.
var StandardPageNames = []string{"privacy", "disclosure", "about", "contact"}

// PageValues feed the built-in standard page bodies.
type PageValues struct {
	Brand    string
	Audience string
	Domain   string
}

var standardBodies = map[string]struct {
	title string
	body  *template.Template
}{
	"about": {"About", template.Must(template.New("about").Parse(
		`<p><strong>{{.Brand}}</strong> provides practical guides, reviews, and tips for {{.Audience}}.</p>`))},
	"contact": {"Contact", template.Must(template.New("contact").Parse(
		`<p>Email: <a href="mailto:contact@{{.Domain}}">contact@{{.Domain}}</a></p>`))},
	"privacy": {"Privacy", template.Must(template.New("privacy").Parse(
		`<p>This site may use cookies for analytics. By continuing, you accept our use of cookies.</p>`))},
	"disclosure": {"Affiliate Disclosure", template.Must(template.New("disclosure").Parse(
		`<p>As an Amazon Associate we earn from qualifying purchases.</p>`))},
}

// StandardPages returns the built-in about, contact, privacy and disclosure
// pages in StandardPageNames order.
func StandardPages(v PageValues) ([]StaticPage, error) {
	pages := make([]StaticPage, 0, len(StandardPageNames))
	for _, name := range StandardPageNames {
		def := standardBodies[name]
		var b strings.Builder
		if err := def.body.Execute(&b, v); err != nil {
			return nil, serrors.RenderFailed(name+".html", err)
		}
		// #nosec G203 -- produced by html/template.
		pages = append(pages, StaticPage{Name: name, Title: def.title, Body: template.HTML(b.String())})
	}
	return pages, nil
}

// reservedPageNames collide with files the builder writes itself.
var reservedPageNames = map[string]struct{}{"index": {}, "404": {}, "archive": {}}

type pageFrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Draft       bool   `yaml:"draft"`
}

// LoadPageOverrides reads every *.md file in dir. A file named after a
// standard page replaces it; any other file becomes an extra page. A missing
// directory yields no pages.
func LoadPageOverrides(dir string) ([]StaticPage, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		slog.Debug("Pages directory does not exist", logfields.Path(dir))
		return nil, nil
	}
	if err != nil {
		return nil, serrors.Wrap(err, serrors.CategoryFileSystem, serrors.SeverityFatal, "failed to read pages directory").
			WithContext("path", dir)
	}

	var pages []StaticPage
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		p := filepath.Join(dir, e.Name())
		page, skip, err := loadPage(p)
		if err != nil {
			return nil, err
		}
		if skip {
			slog.Debug("Skipping draft page", logfields.Path(p))
			continue
		}
		if _, reserved := reservedPageNames[page.Name]; reserved {
			slog.Warn("Ignoring page with reserved name", logfields.Path(p), slog.String("name", page.Name))
			continue
		}
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Name < pages[j].Name })
	return pages, nil
}

func loadPage(path string) (StaticPage, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return StaticPage{}, false, serrors.Wrap(err, serrors.CategoryFileSystem, serrors.SeverityFatal, "failed to read page").
			WithContext("path", path)
	}
	var fm pageFrontMatter
	body, _, err := frontmatter.Decode(raw, &fm)
	if err != nil {
		return StaticPage{}, false, serrors.Wrap(err, serrors.CategoryValidation, serrors.SeverityFatal, "invalid page front matter").
			WithContext("path", path)
	}
	if fm.Draft {
		return StaticPage{}, true, nil
	}
	html, err := markdown.Render(body)
	if err != nil {
		return StaticPage{}, false, serrors.RenderFailed(path, err)
	}

	name := slug.Make(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = markdown.Title(body)
	}
	if title == "" {
		title = slug.Title(strings.ReplaceAll(name, "-", " "))
	}
	return StaticPage{Name: name, Title: title, Description: fm.Description, Body: html}, false, nil
}

// MergePages applies overrides to the standard pages. Standard pages keep
// their order; extra pages follow sorted by name.
func MergePages(standard, overrides []StaticPage) []StaticPage {
	byName := make(map[string]StaticPage, len(overrides))
	for _, p := range overrides {
		byName[p.Name] = p
	}
	out := make([]StaticPage, 0, len(standard)+len(overrides))
	for _, p := range standard {
		if o, ok := byName[p.Name]; ok {
			p = o
			delete(byName, p.Name)
		}
		out = append(out, p)
	}
	for _, p := range overrides {
		if _, ok := byName[p.Name]; ok {
			out = append(out, p)
		}
	}
	return out
}
