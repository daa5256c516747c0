package content

import (
	"context"
	"fmt"
	"strings"
)

// StubGenerator builds records offline from the keyword alone. It is used
// when no model backend is configured and as the shape of the fallback record.
type StubGenerator struct{}

func (StubGenerator) Name() string { return "stub" }

func (StubGenerator) Generate(_ context.Context, keyword string) (Record, error) {
	rec := stubRecord(keyword)
	rec.Tags = strings.Fields(strings.ToLower(keyword))
	return rec, nil
}

// Fallback returns the fixed placeholder record substituted when generation
// fails. It always has a title, the default category and at least one section.
func Fallback(keyword string) Record {
	rec := stubRecord(keyword)
	rec.Fallback = true
	return rec
}

func stubRecord(keyword string) Record {
	keyword = strings.TrimSpace(keyword)
	title := fallbackTitle(keyword)
	subject := keyword
	if subject == "" {
		subject = "this topic"
	}
	return Record{
		Keyword:         keyword,
		Title:           title,
		MetaDescription: fmt.Sprintf("A practical guide to %s: key points, buying tips and alternatives.", subject),
		Summary:         fmt.Sprintf("This is an auto-generated starter article about %s.", subject),
		Category:        DefaultCategory,
		Tags:            []string{},
		Sections: []Section{
			{Heading: "Overview", Paragraphs: []string{fmt.Sprintf("Key points, tips, and a quick summary of %s.", subject)}},
			{Heading: "Buying Tips", Paragraphs: []string{"What to look for, specs, and budget advice."}},
			{Heading: "Alternatives", Paragraphs: []string{"Comparable options and their pros and cons."}},
		},
		FAQ: []FAQ{
			{Question: "Is it worth it?", Answer: "Depends on your needs and budget."},
		},
		ProductName:  "Our Pick",
		ProductBlurb: "Solid choice for most.",
	}
}
