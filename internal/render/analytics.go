package render

import (
	"bytes"
	"html/template"
	"strings"
)

var analyticsTpl = template.Must(template.New("analytics").Parse(
	`{{range .}}{{if eq .Provider "plausible"}}<script defer data-domain="{{.ID}}" src="https://plausible.io/js/script.js"></script>
{{else if eq .Provider "ga4"}}<script async src="https://www.googletagmanager.com/gtag/js?id={{.ID}}"></script>
<script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag("js",new Date());gtag("config",{{.ID}});</script>
{{end}}{{end}}`))

type analyticsProvider struct {
	Provider string
	ID       string
}

// Analytics renders the tracking snippet for a comma separated list of
// "plausible:<domain>" and "ga4:<measurement id>" entries. Unknown entries
// are ignored.
func Analytics(list string) template.HTML {
	var providers []analyticsProvider
	for _, entry := range strings.Split(list, ",") {
		name, id, ok := strings.Cut(strings.TrimSpace(entry), ":")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "plausible" || name == "ga4" {
			providers = append(providers, analyticsProvider{Provider: name, ID: id})
		}
	}
	if len(providers) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := analyticsTpl.Execute(&buf, providers); err != nil {
		return ""
	}
	// #nosec G203 -- produced by html/template.
	return template.HTML(buf.String())
}
