// Package paginate splits ordered listings into fixed-size pages and builds
// the page navigation shared by the home, category and tag listings.
package paginate

import (
	"path"
	"strconv"
	"strings"
)

// DefaultPageSize is the listing size used when none (or a non-positive one) is configured.
const DefaultPageSize = 8

// Result is one page of a listing.
type Result[T any] struct {
	Items []T
	Page  int // 1-based, clamped
	Total int // total pages, at least 1
}

// HasPrev reports whether a previous page exists.
func (r Result[T]) HasPrev() bool { return r.Page > 1 }

// HasNext reports whether a following page exists.
func (r Result[T]) HasNext() bool { return r.Page < r.Total }

// TotalPages returns max(1, ceil(count/size)).
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// Paginate returns the requested page of items. Out-of-range page numbers are
// clamped to [1, total] rather than rejected.
func Paginate[T any](items []T, page, size int) Result[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(items), size)
	page = max(1, min(page, total))

	start := (page - 1) * size
	end := min(start+size, len(items))
	if start > len(items) {
		start = len(items)
	}
	return Result[T]{Items: items[start:end], Page: page, Total: total}
}

// Pages returns every page of items in order.
func Pages[T any](items []T, size int) []Result[T] {
	total := TotalPages(len(items), size)
	out := make([]Result[T], 0, total)
	for n := 1; n <= total; n++ {
		out = append(out, Paginate(items, n, size))
	}
	return out
}

// PageURL is the public URL of page n of a listing rooted at basePath
// ("" for home, "category/<slug>" or "tag/<slug>" otherwise). Page 1 omits
// the /page/1/ suffix.
func PageURL(basePrefix, basePath string, n int) string {
	root := strings.TrimRight(basePrefix, "/")
	if b := strings.Trim(basePath, "/"); b != "" {
		root += "/" + b
	}
	if n <= 1 {
		return root + "/"
	}
	return root + "/page/" + strconv.Itoa(n) + "/"
}

// OutputPath is the slash-separated file path, relative to the site root,
// that page n of a listing is written to.
func OutputPath(basePath string, n int) string {
	b := strings.Trim(basePath, "/")
	if n <= 1 {
		return path.Join(b, "index.html")
	}
	return path.Join(b, "page", strconv.Itoa(n), "index.html")
}

// Link is one numbered entry of a page navigation bar.
type Link struct {
	Number  int
	URL     string
	Current bool
}

// Links returns one link per page number. It is empty when the listing fits on a single page.
func Links(basePrefix, basePath string, current, total int) []Link {
	if total <= 1 {
		return nil
	}
	links := make([]Link, 0, total)
	for n := 1; n <= total; n++ {
		links = append(links, Link{Number: n, URL: PageURL(basePrefix, basePath, n), Current: n == current})
	}
	return links
}
