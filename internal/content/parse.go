package content

import (
	"encoding/json"
	"errors"
	"strings"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
)

var errNoJSONObject = errors.New("no JSON object in model output")

// Parse decodes a model response into a record. Markdown code fences and any
// prose around the outermost JSON object are tolerated. Unparsable output
// yields the fallback record together with a content error.
func Parse(keyword, raw string) (Record, error) {
	body, ok := extractObject(raw)
	if !ok {
		return Fallback(keyword), serrors.MalformedContent(keyword, errNoJSONObject)
	}
	var rec Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return Fallback(keyword), serrors.MalformedContent(keyword, err)
	}
	rec.Keyword = keyword
	return Normalize(rec), nil
}

func extractObject(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
