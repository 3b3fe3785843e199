package generators

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// GenerateSitemap writes sitemap.xml covering every locale's home, blog index
// and published posts. Locales are emitted in models.Locales() order.
func GenerateSitemap(destFs afero.Fs, outputDir, baseURL string, posts map[models.Locale][]models.Post, now time.Time) error {
	var urls []models.Url
	today := now.Format("2006-01-02")

	for _, locale := range models.Locales() {
		urls = append(urls,
			models.Url{Loc: fmt.Sprintf("%s/%s", baseURL, locale), LastMod: today, ChangeFreq: "monthly", Priority: "1.0"},
			models.Url{Loc: fmt.Sprintf("%s/%s/blog", baseURL, locale), LastMod: today, ChangeFreq: "weekly", Priority: "0.9"},
		)
		for _, p := range published(posts[locale]) {
			urls = append(urls, models.Url{
				Loc:        PostURL(baseURL, locale, p.Slug),
				LastMod:    p.DateObj.Format("2006-01-02"),
				ChangeFreq: "never",
				Priority:   "0.7",
			})
		}
	}

	output, err := xml.MarshalIndent(models.UrlSet{Urls: urls}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	return writeFile(destFs, filepath.Join(outputDir, "sitemap.xml"), []byte(xml.Header+string(output)))
}
