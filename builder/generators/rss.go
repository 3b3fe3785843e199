package generators

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// Feed describes the channel of one locale's RSS feed
type Feed struct {
	Title       string
	BaseURL     string
	Description string
}

// GenerateRSS writes <locale>/rss.xml with the published posts of locale,
// newest first as given.
func GenerateRSS(destFs afero.Fs, outputDir string, feed Feed, locale models.Locale, posts []models.Post) error {
	var items []models.Item
	for _, p := range published(posts) {
		link := PostURL(feed.BaseURL, locale, p.Slug)
		items = append(items, models.Item{
			Title:       p.Title,
			Link:        link,
			Description: PlainText(p.Description),
			PubDate:     p.DateObj.Format(time.RFC1123Z),
			Guid:        link,
			Categories:  p.Tags,
		})
	}

	rss := models.Rss{
		Version: "2.0",
		Channel: models.Channel{
			Title:       feed.Title,
			Link:        fmt.Sprintf("%s/%s/blog", feed.BaseURL, locale),
			Description: PlainText(feed.Description),
			Language:    string(locale),
			Items:       items,
		},
	}
	output, err := xml.MarshalIndent(rss, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rss: %w", err)
	}
	return writeFile(destFs, filepath.Join(outputDir, string(locale), "rss.xml"), []byte(xml.Header+string(output)))
}
