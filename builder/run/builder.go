package run

import (
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/cache"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/config"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/content"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/highlight"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/metrics"
)

// Builder maintains the state for site builds. One Builder can run Build many
// times; the highlighter and its cache stay open between builds.
type Builder struct {
	cfg         *config.Config
	logger      *slog.Logger
	repo        content.Repository
	highlighter *highlight.Highlighter
	cache       *cache.Manager // nil when no on-disk cache is attached
	metrics     *metrics.BuildMetrics
	now         func() time.Time

	SourceFs afero.Fs
	DestFs   afero.Fs
}

// Option configures a Builder.
type Option func(*Builder)

// WithRepository replaces the filesystem repository built from the config.
func WithRepository(repo content.Repository) Option {
	return func(b *Builder) { b.repo = repo }
}

// WithHighlighter replaces the chroma highlighter and its on-disk cache.
func WithHighlighter(h *highlight.Highlighter) Option {
	return func(b *Builder) { b.highlighter = h }
}

// WithFs sets the filesystems content is read from and output written to.
func WithFs(source, dest afero.Fs) Option {
	return func(b *Builder) {
		b.SourceFs = source
		b.DestFs = dest
	}
}

// WithClock sets the time source used for sitemap and RSS timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder initializes a new site builder. A cache that cannot be opened is
// logged and the build continues without one.
func NewBuilder(cfg *config.Config, logger *slog.Logger, opts ...Option) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Builder{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewBuildMetrics(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.SourceFs == nil {
		b.SourceFs = afero.NewOsFs()
	}
	if b.DestFs == nil {
		b.DestFs = afero.NewOsFs()
	}

	if b.repo == nil {
		b.repo = content.NewFSRepository(b.SourceFs, cfg.PostsDir,
			content.WithDrafts(cfg.DraftsDir),
			content.WithDevMode(cfg.IsDev()),
			content.WithLogger(logger),
		)
	}

	if b.highlighter == nil {
		hopts := []highlight.Option{
			highlight.WithThemes(cfg.Highlight.LightTheme, cfg.Highlight.DarkTheme),
			highlight.WithLogger(logger),
		}
		cm, err := cache.Open(cfg.CacheDir, cache.Options{Compress: cfg.Highlight.Compress, Logger: logger})
		if err != nil {
			logger.Warn("Highlight cache unavailable, rendering every block", "dir", cfg.CacheDir, "error", err)
		} else {
			b.cache = cm
			hopts = append(hopts, highlight.WithCache(cm))
		}
		b.highlighter = highlight.New(hopts...)
	}

	return b
}

// Config returns the builder's configuration
func (b *Builder) Config() *config.Config {
	return b.cfg
}

// Metrics returns the metrics of the last build.
func (b *Builder) Metrics() *metrics.BuildMetrics {
	return b.metrics
}

// SetDevMode enables/disables development mode. Drafts are only listed by a
// repository created after the switch, so the default repository is rebuilt.
func (b *Builder) SetDevMode(isDev bool) {
	b.cfg.SetDevMode(isDev)
	if _, ok := b.repo.(*content.FSRepository); ok {
		b.repo = content.NewFSRepository(b.SourceFs, b.cfg.PostsDir,
			content.WithDrafts(b.cfg.DraftsDir),
			content.WithDevMode(isDev),
			content.WithLogger(b.logger),
		)
	}
}

// Close flushes and closes the highlight cache.
func (b *Builder) Close() error {
	if b.cache == nil {
		return nil
	}
	return b.cache.Close()
}
