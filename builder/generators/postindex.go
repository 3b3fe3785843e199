package generators

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/utils"
)

// NewSummary builds the listing entry of a post.
func NewSummary(p models.Post) models.PostSummary {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.PostSummary{
		Title:         p.Title,
		Description:   PlainText(p.Description),
		Date:          p.Date,
		FormattedDate: utils.FormatDate(p.DateObj, p.Locale),
		Tags:          tags,
		Author:        p.Author,
		Locale:        p.Locale,
		Slug:          p.Slug,
		Image:         p.Image,
		ReadingTime:   p.ReadingTime,
		Draft:         p.Draft,
	}
}

// WritePostList writes posts.<locale>.json, the blog listing in the given order.
func WritePostList(destFs afero.Fs, outputDir string, locale models.Locale, posts []models.Post) error {
	summaries := make([]models.PostSummary, len(posts))
	for i, p := range posts {
		summaries[i] = NewSummary(p)
	}
	return writeJSON(destFs, filepath.Join(outputDir, fmt.Sprintf("posts.%s.json", locale)), summaries)
}

// WriteTagList writes tags.<locale>.json.
func WriteTagList(destFs afero.Fs, outputDir string, locale models.Locale, tags []models.TagData) error {
	if tags == nil {
		tags = []models.TagData{}
	}
	return writeJSON(destFs, filepath.Join(outputDir, fmt.Sprintf("tags.%s.json", locale)), tags)
}

// WritePostEntry writes posts/<locale>/<slug>.json.
func WritePostEntry(destFs afero.Fs, outputDir string, entry models.PostIndexEntry) error {
	name := filepath.Join(outputDir, "posts", string(entry.Locale), entry.Slug+".json")
	return writeJSON(destFs, name, entry)
}

func writeJSON(destFs afero.Fs, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return writeFile(destFs, name, data)
}
