package run

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/generators"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/highlight"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/index"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/metrics"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/parser"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/utils"
)

// Build reads every locale's posts and writes the JSON indexes, RSS feeds and
// sitemap. Locales are built concurrently; the first content error cancels
// the others and is returned.
func (b *Builder) Build(ctx context.Context) error {
	b.metrics = metrics.NewBuildMetrics()
	hits, misses := b.cacheCounters()

	locales := models.Locales()
	results := make([][]models.Post, len(locales))

	light, dark := b.highlighter.Themes()
	b.logger.Debug("Starting build", "locales", len(locales), "lightTheme", light, "darkTheme", dark)

	g, gctx := errgroup.WithContext(ctx)
	for i, locale := range locales {
		g.Go(func() error {
			posts, err := b.buildLocale(gctx, locale)
			if err != nil {
				return fmt.Errorf("build %s: %w", locale, err)
			}
			results[i] = posts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	byLocale := make(map[models.Locale][]models.Post, len(locales))
	for i, locale := range locales {
		byLocale[locale] = results[i]
	}

	done := b.metrics.Track("write")
	err := generators.GenerateSitemap(b.DestFs, b.cfg.OutputDir, b.cfg.BaseURL, byLocale, b.now())
	done()
	if err != nil {
		return fmt.Errorf("sitemap: %w", err)
	}
	b.metrics.IncrementFilesWritten()

	newHits, newMisses := b.cacheCounters()
	b.metrics.AddCacheStats(newHits-hits, newMisses-misses)

	if b.cache != nil {
		if err := b.cache.IncrementBuildCount(); err != nil {
			b.logger.Warn("Failed to update cache index", "error", err)
		}
	}

	b.metrics.RecordEnd()
	return nil
}

// buildLocale loads, highlights and writes the posts of one locale and returns
// them in listing order.
func (b *Builder) buildLocale(ctx context.Context, locale models.Locale) ([]models.Post, error) {
	includeDrafts := b.cfg.IncludeDrafts && b.cfg.IsDev()

	done := b.metrics.Track("load")
	posts, err := b.repo.ListPosts(locale, includeDrafts)
	done()
	if err != nil {
		return nil, err
	}
	b.logger.Debug("Loaded posts", "locale", locale, "count", len(posts), "drafts", includeDrafts)

	done = b.metrics.Track("highlight")
	bodies := utils.ParallelMap(ctx, b.cfg.Workers, posts, func(p models.Post) string {
		b.metrics.AddCodeBlocks(len(highlight.ExtractCodeBlocks(p.Content)))
		return b.highlighter.HighlightCodeBlocks(p.Content)
	})
	done()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done = b.metrics.Track("write")
	defer done()

	for i, p := range posts {
		entry := models.PostIndexEntry{
			PostSummary: generators.NewSummary(p),
			Content:     bodies[i],
			TOC:         parser.GenerateTOC(p.Content),
			Related:     index.RelatedSlugs(p, posts, index.DefaultRelatedLimit),
		}
		if entry.TOC == nil {
			entry.TOC = []models.TOCHeading{}
		}
		if err := generators.WritePostEntry(b.DestFs, b.cfg.OutputDir, entry); err != nil {
			return nil, err
		}
		b.metrics.IncrementPostsProcessed()
		b.metrics.IncrementFilesWritten()
	}

	if err := generators.WritePostList(b.DestFs, b.cfg.OutputDir, locale, posts); err != nil {
		return nil, err
	}
	b.metrics.IncrementFilesWritten()

	if err := generators.WriteTagList(b.DestFs, b.cfg.OutputDir, locale, index.TagCounts(posts)); err != nil {
		return nil, err
	}
	b.metrics.IncrementFilesWritten()

	feed := generators.Feed{
		Title:       b.cfg.Title,
		BaseURL:     b.cfg.BaseURL,
		Description: b.cfg.Description(locale),
	}
	if err := generators.GenerateRSS(b.DestFs, b.cfg.OutputDir, feed, locale, posts); err != nil {
		return nil, err
	}
	b.metrics.IncrementFilesWritten()

	return posts, nil
}

// cacheCounters returns the cache's lifetime hit and miss counts, or zeros
// without an on-disk cache.
func (b *Builder) cacheCounters() (hits, misses int64) {
	if b.cache == nil {
		return 0, 0
	}
	h, m := b.cache.Counters()
	return h, m
}
