// Package taxonomy groups post metadata by category and by tag for the
// listing pages, sidebar counts and sitemap.
package taxonomy

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitesmith/internal/content"
	"git.home.luguber.info/inful/sitesmith/internal/slug"
)

// Kind distinguishes category groups from tag groups.
type Kind string

const (
	KindCategory Kind = "category"
	KindTag      Kind = "tag"
)

// Group is every post filed under one category or tag, in build order.
type Group struct {
	Kind  Kind
	Name  string
	Slug  string
	Posts []content.Meta
}

// Count is the number of posts in the group.
func (g Group) Count() int { return len(g.Posts) }

// BasePath is the listing path of the group relative to the site root ("tag/<slug>").
func (g Group) BasePath() string { return string(g.Kind) + "/" + g.Slug }

// ByCategory partitions posts by their declared category.
func ByCategory(posts []content.Meta) []Group {
	return group(KindCategory, posts, func(m content.Meta) []string { return []string{m.Category} })
}

// ByTag groups posts by tag; a post with k distinct tags lands in k groups.
func ByTag(posts []content.Meta) []Group {
	return group(KindTag, posts, func(m content.Meta) []string { return m.Tags })
}

func group(kind Kind, posts []content.Meta, keys func(content.Meta) []string) []Group {
	index := map[string]int{}
	var groups []Group
	for _, p := range posts {
		seen := map[string]struct{}{}
		for _, name := range keys(p) {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			// Names that share a slug share a listing directory, so they share a group.
			key := slug.Make(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			i, ok := index[key]
			if !ok {
				i = len(groups)
				index[key] = i
				groups = append(groups, Group{Kind: kind, Name: name, Slug: key})
			}
			groups[i].Posts = append(groups[i].Posts, p)
		}
	}
	Sort(groups)
	return groups
}

// Sort orders groups by descending member count, then alphabetically
// (case-insensitive, ties broken by exact name).
func Sort(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Count() != b.Count() {
			return a.Count() > b.Count()
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

// Newest returns the group's posts newest first (reverse build order).
func (g Group) Newest() []content.Meta {
	return Reverse(g.Posts)
}

// Reverse returns a reversed copy of posts.
func Reverse(posts []content.Meta) []content.Meta {
	out := make([]content.Meta, len(posts))
	for i, p := range posts {
		out[len(posts)-1-i] = p
	}
	return out
}
