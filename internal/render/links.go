package render

import (
	"net/url"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitesmith/internal/slug"
)

// PlaceholderASIN is linked when a product has no ASIN.
const PlaceholderASIN = "B000000000"

// Image is a hero or card image with a client-side fallback source.
type Image struct {
	Src      string
	Fallback string
	Alt      string
	Width    int
	Height   int
}

// TopicImage builds a topic-matched Unsplash image with a Picsum fallback
// seeded by the topic. A non-empty mapped URL replaces the Unsplash source.
func TopicImage(topic, alt, mapped string, w, h int) Image {
	if strings.TrimSpace(topic) == "" {
		topic = "kitchen"
	}
	dims := strconv.Itoa(w) + "x" + strconv.Itoa(h)
	img := Image{
		Src:      "https://source.unsplash.com/" + dims + "/?" + slug.Topic(topic),
		Fallback: "https://picsum.photos/seed/" + slug.Make(topic) + "/" + strconv.Itoa(w) + "/" + strconv.Itoa(h),
		Alt:      alt,
		Width:    w,
		Height:   h,
	}
	if mapped != "" {
		img.Src = mapped
	}
	return img
}

// AmazonURL is the affiliate product link for an ASIN.
func AmazonURL(asin, tag string) string {
	asin = strings.TrimSpace(asin)
	if asin == "" {
		asin = PlaceholderASIN
	}
	return "https://www.amazon.com/dp/" + url.PathEscape(asin) + "?tag=" + url.QueryEscape(tag)
}

// PostURL is the site-relative URL of a post.
func PostURL(basePrefix, postSlug string) string {
	return basePrefix + "/posts/" + postSlug + "/"
}

// CategoryURL is the site-relative URL of a category listing.
func CategoryURL(basePrefix, name string) string {
	return basePrefix + "/category/" + slug.Make(name) + "/"
}

// TagURL is the site-relative URL of a tag listing.
func TagURL(basePrefix, name string) string {
	return basePrefix + "/tag/" + slug.Make(name) + "/"
}
