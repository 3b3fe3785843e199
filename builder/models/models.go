// defines the data structures shared by the content pipeline and generators
package models

import (
	"encoding/xml"
	"time"
)

// Locale is a language/region tag from the closed set the site is published in.
type Locale string

const (
	LocaleEN   Locale = "en"
	LocalePTBR Locale = "pt-BR"
)

// Locales returns every supported locale in canonical order.
func Locales() []Locale {
	return []Locale{LocaleEN, LocalePTBR}
}

// --- Post Structures ---

// PostFrontmatter is the metadata block at the head of every content file.
type PostFrontmatter struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
	Locale      Locale   `json:"locale"`
	Slug        string   `json:"slug"`
	Image       string   `json:"image,omitempty"`
	// ReadingTime is 0 from the parser when the file omits it; NewPost fills
	// in the estimate.
	ReadingTime int `json:"readingTime,omitempty"`
}

// Post is a parsed content file. Posts are rebuilt on every repository read
// and must not be mutated once returned.
type Post struct {
	PostFrontmatter
	Content    string    `json:"content"`
	DateObj    time.Time `json:"-"`
	Draft      bool      `json:"draft,omitempty"`
	SourcePath string    `json:"-"`
}

// HasTag reports whether the post carries tag (exact match).
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// --- TOC Structure ---
type TOCHeading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// HighlightedCode holds both theme renders of one code snippet.
type HighlightedCode struct {
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

// TagData represents a tag and its frequency.
type TagData struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// --- Output Structures (consumed by the presentation layer) ---

// PostSummary is a list entry in posts.<locale>.json.
type PostSummary struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Date          string   `json:"date"`
	FormattedDate string   `json:"formattedDate"`
	Tags          []string `json:"tags"`
	Author        string   `json:"author"`
	Locale        Locale   `json:"locale"`
	Slug          string   `json:"slug"`
	Image         string   `json:"image,omitempty"`
	ReadingTime   int      `json:"readingTime"`
	Draft         bool     `json:"draft,omitempty"`
}

// PostIndexEntry is the full per-post document written to posts/<locale>/<slug>.json.
type PostIndexEntry struct {
	PostSummary
	Content string       `json:"content"`
	TOC     []TOCHeading `json:"toc"`
	Related []string     `json:"related"`
}

// --- Sitemap Structures ---

type UrlSet struct {
	XMLName xml.Name `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// --- RSS Structures ---

type Rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

type Channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Language    string `xml:"language,omitempty"`
	Items       []Item `xml:"item"`
}

type Item struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	Guid        string   `xml:"guid"`
	Categories  []string `xml:"category,omitempty"`
}
