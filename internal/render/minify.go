package render

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Minify collapses runs of whitespace in text between tags and drops
// comments. Content inside pre, code, textarea, script and style is copied
// unchanged.
func Minify(doc []byte) ([]byte, error) {
	z := html.NewTokenizer(bytes.NewReader(doc))
	var out bytes.Buffer
	out.Grow(len(doc))
	preserve := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return out.Bytes(), nil
		case html.CommentToken:
			continue
		case html.StartTagToken:
			name, _ := z.TagName()
			if isPreserved(atom.Lookup(name)) {
				preserve++
			}
			out.Write(z.Raw())
		case html.EndTagToken:
			name, _ := z.TagName()
			if isPreserved(atom.Lookup(name)) && preserve > 0 {
				preserve--
			}
			out.Write(z.Raw())
		case html.TextToken:
			raw := z.Raw()
			if preserve > 0 {
				out.Write(raw)
				continue
			}
			out.WriteString(collapseSpace(string(raw)))
		default:
			out.Write(z.Raw())
		}
	}
}

func isPreserved(a atom.Atom) bool {
	switch a {
	case atom.Pre, atom.Code, atom.Textarea, atom.Script, atom.Style:
		return true
	}
	return false
}

// collapseSpace replaces each whitespace run with a single space, or a
// newline when the run contained one.
func collapseSpace(s string) string {
	if strings.TrimSpace(s) == "" {
		if s == "" {
			return ""
		}
		if strings.ContainsRune(s, '\n') {
			return "\n"
		}
		return " "
	}
	var b strings.Builder
	b.Grow(len(s))
	inSpace, sawNewline := false, false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			inSpace = true
			if r == '\n' {
				sawNewline = true
			}
			continue
		}
		if inSpace {
			if sawNewline {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
			inSpace, sawNewline = false, false
		}
		b.WriteRune(r)
	}
	if inSpace {
		if sawNewline {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
