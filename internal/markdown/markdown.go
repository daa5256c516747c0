// Package markdown renders Markdown to HTML with goldmark. Raw HTML in the
// source is dropped, so generator output cannot inject markup.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Render converts a Markdown document to HTML.
func Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", err
	}
	// #nosec G203 -- goldmark escapes text and omits raw HTML.
	return template.HTML(buf.String()), nil
}

// Inline renders Markdown as phrasing content only, so the result is safe
// inside a <p>. Block structure is flattened: headings, list items and
// paragraphs keep their inline markup and are joined by spaces, code blocks
// become <code>. Text that fails to render is returned escaped.
func Inline(src string) template.HTML {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))
	var buf bytes.Buffer
	if err := renderInline(&buf, doc, source); err != nil {
		// #nosec G203 -- escaped.
		return template.HTML(template.HTMLEscapeString(src))
	}
	// #nosec G203 -- produced by goldmark from inline nodes only.
	return template.HTML(strings.Join(strings.Fields(buf.String()), " "))
}

func renderInline(buf *bytes.Buffer, n gmast.Node, src []byte) error {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch {
		case c.Type() == gmast.TypeInline:
			if err := md.Renderer().Render(buf, src, c); err != nil {
				return err
			}
		case c.Kind() == gmast.KindCodeBlock || c.Kind() == gmast.KindFencedCodeBlock:
			var code bytes.Buffer
			lines := c.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				code.Write(seg.Value(src))
			}
			buf.WriteString(" <code>" + template.HTMLEscapeString(strings.TrimSpace(code.String())) + "</code> ")
		case c.Kind() == gmast.KindHTMLBlock || c.Kind() == gmast.KindThematicBreak:
		default:
			if err := renderInline(buf, c, src); err != nil {
				return err
			}
			buf.WriteByte(' ')
		}
	}
	return nil
}

// Title returns the text of the first level-one heading, if any.
func Title(src []byte) string {
	root := md.Parser().Parse(text.NewReader(src))
	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(string(nodeText(h, src)))
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return title
}

func nodeText(n gmast.Node, src []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			buf.Write(t.Segment.Value(src))
			continue
		}
		buf.Write(nodeText(c, src))
	}
	return buf.Bytes()
}
