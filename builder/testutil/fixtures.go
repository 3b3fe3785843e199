// Package testutil provides testing utilities and fixtures
package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/config"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// PostSource renders a content file with the given frontmatter values and body.
func PostSource(slug string, locale models.Locale, date string, tags []string, body string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", "Post "+slug)
	fmt.Fprintf(&b, "description: %q\n", "About "+slug)
	fmt.Fprintf(&b, "date: %s\n", date)
	b.WriteString("tags: [")
	for i, t := range tags {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", t)
	}
	b.WriteString("]\n")
	b.WriteString("author: \"Test Author\"\n")
	fmt.Fprintf(&b, "locale: %s\n", locale)
	fmt.Fprintf(&b, "slug: %s\n", slug)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}

// PostPath returns the conventional file path of a post under dir.
func PostPath(dir, slug string, locale models.Locale) string {
	return filepath.Join(dir, slug+"."+string(locale)+".mdx")
}

// CreateSamplePost creates a valid Post for testing
func CreateSamplePost(slug, date string, tags ...string) models.Post {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	if tags == nil {
		tags = []string{}
	}
	return models.Post{
		PostFrontmatter: models.PostFrontmatter{
			Title:       "Post " + slug,
			Description: "About " + slug,
			Date:        date,
			Tags:        tags,
			Author:      "Test Author",
			Locale:      models.LocaleEN,
			Slug:        slug,
			ReadingTime: 1,
		},
		Content: CreateTestMarkdown(),
		DateObj: d,
	}
}

// CreateSampleConfig creates a valid Config for testing
func CreateSampleConfig() *config.Config {
	cfg := config.Default()
	cfg.Title = "Test Site"
	cfg.BaseURL = "https://example.com"
	cfg.Author = config.AuthorConfig{Name: "Test Author", URL: "https://author.example.com"}
	cfg.ContentDir = "content"
	cfg.PostsDir = "content/posts"
	cfg.DraftsDir = "content/drafts"
	cfg.OutputDir = "public"
	cfg.CacheDir = ".cache/syntax-highlighting"
	cfg.Workers = 2
	return cfg
}

// CreateTestMarkdown creates sample markdown content for testing
func CreateTestMarkdown() string {
	return "## Section 1\n\nSome content here.\n\n" +
		"```go\nfmt.Println(\"hi\")\n```\n\n" +
		"### Details\n\nMore content here with **bold** and *italic* text.\n\n" +
		"## Section 2\n\n[Link to example](https://example.com)\n"
}
