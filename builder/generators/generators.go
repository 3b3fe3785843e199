// Package generators writes the derived site artifacts: sitemap, RSS feeds and
// the JSON post index the presentation layer reads.
package generators

import (
	"fmt"
	"html"
	"path"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/afero"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// strictPolicy strips every tag; descriptions are plain text in feeds and JSON.
var strictPolicy = bluemonday.StrictPolicy()

// PlainText removes markup from s and decodes entities, leaving text ready to
// be escaped again by the output encoder.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// PostURL is the canonical URL of a post.
func PostURL(baseURL string, locale models.Locale, slug string) string {
	return strings.TrimSuffix(baseURL, "/") + path.Join("/", string(locale), "blog", slug)
}

func writeFile(destFs afero.Fs, name string, data []byte) error {
	if err := destFs.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := afero.WriteFile(destFs, name, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func published(posts []models.Post) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if !p.Draft {
			out = append(out, p)
		}
	}
	return out
}
