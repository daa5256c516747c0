// Package content turns keywords into structured post records, either through
// a large-language-model backend or a deterministic offline stub, and
// substitutes a fixed fallback record whenever generation fails.
package content

// DefaultCategory is assigned to records that do not declare a category.
const DefaultCategory = "General"

// Section is one headed block of body paragraphs.
type Section struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
}

// FAQ is a single question/answer pair.
type FAQ struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// ComparisonItem is one row of the product comparison table.
type ComparisonItem struct {
	Name  string   `json:"name"`
	Blurb string   `json:"blurb"`
	ASIN  string   `json:"asin"`
	Pros  []string `json:"pros"`
	Cons  []string `json:"cons"`
}

// Source is a further-reading reference.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Author describes the byline printed under a post.
type Author struct {
	Name string `json:"name" yaml:"name"`
	Bio  string `json:"bio,omitempty" yaml:"bio,omitempty"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Record is the structured content of one generated article. It is created
// once per keyword per build and not modified afterwards.
type Record struct {
	Keyword         string           `json:"-"`
	Slug            string           `json:"-"`
	Title           string           `json:"title"`
	MetaDescription string           `json:"meta_description"`
	Summary         string           `json:"summary,omitempty"`
	Category        string           `json:"category"`
	Tags            []string         `json:"tags"`
	Sections        []Section        `json:"sections"`
	FAQ             []FAQ            `json:"faq"`
	ProductName     string           `json:"product_name,omitempty"`
	ProductBlurb    string           `json:"product_blurb,omitempty"`
	Comparison      []ComparisonItem `json:"comparison,omitempty"`
	Sources         []Source         `json:"sources,omitempty"`
	Author          Author           `json:"-"`
	Fallback        bool             `json:"-"`
}

// Meta is the reduced projection of a Record used to build indexes.
type Meta struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// Meta returns the index projection of r.
func (r Record) Meta() Meta {
	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)
	return Meta{Slug: r.Slug, Title: r.Title, Category: r.Category, Tags: tags}
}
