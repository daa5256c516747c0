package render

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BodyID marks the element holding a post's article text.
const BodyID = "post-body"

// Extract is the plain text pulled from a rendered post body.
type Extract struct {
	Headings       []string
	FirstParagraph string
}

// ExtractText parses a rendered post and collects the h2 headings and the
// first paragraph with text inside the element with id BodyID. Documents
// without that element are searched whole.
func ExtractText(doc []byte) (Extract, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return Extract{}, err
	}
	scope := findByID(root, BodyID)
	if scope == nil {
		scope = root
	}

	var ex Extract
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H2:
				if t := collapse(textOf(n)); t != "" {
					ex.Headings = append(ex.Headings, t)
				}
				return
			case atom.P:
				if ex.FirstParagraph == "" && !hasClass(n, "post-taxonomy") {
					ex.FirstParagraph = collapse(textOf(n))
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(scope)
	return ex, nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, f := range strings.Fields(a.Val) {
				if f == class {
					return true
				}
			}
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
