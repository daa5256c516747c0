// Package slug derives URL-safe identifiers from titles, keywords, categories and tags.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned for input that contains no slug-able characters.
const Fallback = "post"

// Make maps text to a lowercase, hyphen-separated identifier containing only
// [a-z0-9-]. Accented letters are folded to their ASCII base. The result never
// starts or ends with a hyphen and is stable under repeated application.
func Make(text string) string {
	folded := fold(text)

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingHyphen = true
		}
	}

	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}

// fold strips combining marks after canonical decomposition ("café" -> "cafe").
func fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Title renders a keyword the way a headline would show it ("air fryer" -> "Air Fryer").
func Title(text string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(text), " "))
}

// Topic turns text into a comma-separated image search query ("Air Fryer" -> "air,fryer").
func Topic(text string) string {
	return strings.ReplaceAll(Make(text), "-", ",")
}
