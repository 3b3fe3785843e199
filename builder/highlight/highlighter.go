// Package highlight pre-renders fenced code into paired light and dark HTML,
// reusing earlier renders through a content-addressed cache.
package highlight

import (
	"encoding/hex"
	"io"
	"log/slog"

	"github.com/zeebo/blake3"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// CacheFormatVersion is mixed into every cache key. Bump it whenever the
// rendered HTML changes shape so stale entries stop matching.
const CacheFormatVersion = "v4"

// CommentContrastColor replaces the dark theme's comment colour, which is too
// dim against the site's dark background.
const CommentContrastColor = "#8b949e"

const (
	DefaultLightTheme = "github"
	DefaultDarkTheme  = "monokai"
)

// Engine renders code with a named style.
type Engine interface {
	// Render renders code with style. A non-empty commentColor replaces the
	// style's colour on comment tokens only.
	Render(code, language, style, commentColor string) (string, error)
	// Supports reports whether the engine has a grammar for language.
	Supports(language string) bool
}

// Entry is one rendered variant handed to a Cache.
type Entry struct {
	Language string
	Theme    string
	HTML     string
}

// Cache stores rendered HTML by key. Failures are never fatal to highlighting:
// a failed Get is a miss and a failed Put is logged.
type Cache interface {
	Get(key string) (string, bool)
	Put(key string, entry Entry) error
}

// Highlighter is the long-lived handle owning the engine, the themes and the
// cache. It is safe for concurrent use when its Cache is.
type Highlighter struct {
	engine Engine
	cache  Cache
	light  string
	dark   string
	logger *slog.Logger
}

type Option func(*Highlighter)

func WithEngine(e Engine) Option {
	return func(h *Highlighter) { h.engine = e }
}

func WithCache(c Cache) Option {
	return func(h *Highlighter) { h.cache = c }
}

// WithThemes overrides the light and dark styles; empty names keep the defaults.
func WithThemes(light, dark string) Option {
	return func(h *Highlighter) {
		if light != "" {
			h.light = light
		}
		if dark != "" {
			h.dark = dark
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Highlighter) { h.logger = l }
}

// New creates a Highlighter backed by chroma and no cache unless overridden.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{
		engine: NewChromaEngine(),
		cache:  nopCache{},
		light:  DefaultLightTheme,
		dark:   DefaultDarkTheme,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Themes returns the light and dark style names.
func (h *Highlighter) Themes() (light, dark string) {
	return h.light, h.dark
}

// Highlight returns light and dark HTML for code. It never fails: unknown
// languages and engine errors fall back to escaped preformatted text.
func (h *Highlighter) Highlight(code, language string) models.HighlightedCode {
	lang := NormalizeLanguage(language)

	lightKey := CacheKey(code, lang, h.light)
	darkKey := CacheKey(code, lang, h.dark)
	if light, ok := h.cache.Get(lightKey); ok {
		if dark, ok := h.cache.Get(darkKey); ok {
			return models.HighlightedCode{Light: light, Dark: dark}
		}
	}

	if !IsSupported(lang) || !h.engine.Supports(lang) {
		h.logger.Warn("Unsupported language, rendering as plain text", "language", language)
		return Fallback(code)
	}

	light, err := h.engine.Render(code, lang, h.light, "")
	if err != nil {
		h.logger.Error("Highlighting failed", "language", lang, "theme", h.light, "error", err)
		return Fallback(code)
	}
	dark, err := h.engine.Render(code, lang, h.dark, CommentContrastColor)
	if err != nil {
		h.logger.Error("Highlighting failed", "language", lang, "theme", h.dark, "error", err)
		return Fallback(code)
	}

	light = stripBackground(light)
	dark = stripBackground(dark)

	h.store(lightKey, Entry{Language: lang, Theme: h.light, HTML: light})
	h.store(darkKey, Entry{Language: lang, Theme: h.dark, HTML: dark})

	return models.HighlightedCode{Light: light, Dark: dark}
}

func (h *Highlighter) store(key string, e Entry) {
	if err := h.cache.Put(key, e); err != nil {
		h.logger.Warn("Failed to write highlight cache", "key", key, "theme", e.Theme, "error", err)
	}
}

// CacheKey is the hex BLAKE3 digest of code, language, theme and
// CacheFormatVersion, NUL separated.
func CacheKey(code, language, theme string) string {
	h := blake3.New()
	for i, part := range []string{code, language, theme, CacheFormatVersion} {
		if i > 0 {
			_, _ = io.WriteString(h, "\x00")
		}
		_, _ = io.WriteString(h, part)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Fallback is the rendering used when code cannot be highlighted.
func Fallback(code string) models.HighlightedCode {
	out := fallbackHTML(code)
	return models.HighlightedCode{Light: out, Dark: out}
}

type nopCache struct{}

func (nopCache) Get(string) (string, bool) { return "", false }
func (nopCache) Put(string, Entry) error   { return nil }
