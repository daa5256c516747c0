package render

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"git.home.luguber.info/inful/sitesmith/internal/logfields"
)

// DefaultTheme is used when no theme, or an unknown one, is configured.
const DefaultTheme = "bulma"

// Theme selects the stylesheet and container markup wrapped around every page.
type Theme struct {
	Name           string
	CSS            string // stylesheet URL; empty for none
	SectionClass   string
	ContainerClass string
}

var (
	themeRegistryMu sync.RWMutex
	themeRegistry   = map[string]Theme{}
)

func init() {
	RegisterTheme(Theme{
		Name:           "bulma",
		CSS:            "https://cdnjs.cloudflare.com/ajax/libs/bulma/0.9.4/css/bulma.min.css",
		SectionClass:   "section",
		ContainerClass: "container",
	})
	RegisterTheme(Theme{
		Name:           "pico",
		CSS:            "https://cdn.jsdelivr.net/npm/@picocss/pico@2/css/pico.classless.min.css",
		ContainerClass: "container",
	})
	RegisterTheme(Theme{Name: "plain"})
}

// RegisterTheme adds a theme. Duplicate names are ignored.
func RegisterTheme(t Theme) {
	name := strings.ToLower(strings.TrimSpace(t.Name))
	if name == "" {
		return
	}
	t.Name = name
	themeRegistryMu.Lock()
	defer themeRegistryMu.Unlock()
	if _, exists := themeRegistry[name]; exists {
		return
	}
	themeRegistry[name] = t
}

// LookupTheme returns the registered theme with the given name.
func LookupTheme(name string) (Theme, bool) {
	themeRegistryMu.RLock()
	defer themeRegistryMu.RUnlock()
	t, ok := themeRegistry[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// ResolveTheme returns the named theme, falling back to DefaultTheme with a
// warning when it is unknown.
func ResolveTheme(name string) Theme {
	if name == "" {
		name = DefaultTheme
	}
	if t, ok := LookupTheme(name); ok {
		return t
	}
	slog.Warn("Unknown theme, falling back to default", logfields.Theme(name), slog.String("default", DefaultTheme))
	t, _ := LookupTheme(DefaultTheme)
	return t
}

// ThemeNames lists the registered themes alphabetically.
func ThemeNames() []string {
	themeRegistryMu.RLock()
	defer themeRegistryMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for n := range themeRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
