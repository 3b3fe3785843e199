// handles lxndr.yaml and command-line flags
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// Mode selects between development and production builds. Drafts are only
// ever published in development mode.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// EnvMode is the environment variable that overrides the configured mode.
const EnvMode = "LXNDR_ENV"

const (
	defaultBaseURL = "https://lxndr-portifolio.vercel.app"
	maxWorkers     = 32
)

// configFiles are tried in order; the first one found wins.
var configFiles = []string{"lxndr.yaml", "config.yaml"}

type AuthorConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type HighlightConfig struct {
	LightTheme string `yaml:"lightTheme"`
	DarkTheme  string `yaml:"darkTheme"`
	Compress   bool   `yaml:"compress"` // zstd-compress large cache entries
}

type Config struct {
	Title        string                   `yaml:"title"`
	BaseURL      string                   `yaml:"baseURL"`
	Author       AuthorConfig             `yaml:"author"`
	Descriptions map[models.Locale]string `yaml:"descriptions"`

	ContentDir string `yaml:"contentDir"`
	PostsDir   string `yaml:"postsDir"`
	DraftsDir  string `yaml:"draftsDir"`
	OutputDir  string `yaml:"outputDir"`
	CacheDir   string `yaml:"cacheDir"`

	Mode          Mode            `yaml:"mode"`
	IncludeDrafts bool            `yaml:"includeDrafts"`
	Highlight     HighlightConfig `yaml:"highlight"`
	Workers       int             `yaml:"workers"`
	Verbose       bool            `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Title:   "LXNDR",
		BaseURL: defaultBaseURL,
		Author:  AuthorConfig{Name: "Alexandre"},
		Descriptions: map[models.Locale]string{
			models.LocaleEN:   "Thoughts, ideas and research on software engineering, Next.js, React, TypeScript and modern web technologies.",
			models.LocalePTBR: "Pensamentos, ideias e pesquisa sobre engenharia de software, Next.js, React, TypeScript e tecnologias web modernas.",
		},
		ContentDir: "content",
		OutputDir:  "public",
		CacheDir:   filepath.Join(".cache", "syntax-highlighting"),
		Mode:       ModeProduction,
		Highlight: HighlightConfig{
			LightTheme: "github",
			DarkTheme:  "monokai",
		},
		Workers: runtime.NumCPU(),
	}
}

// Load builds the configuration from defaults, the first config file found in
// the working directory, LXNDR_ENV and finally the command-line flags in args.
// An unreadable or invalid config file is reported on stderr and ignored.
func Load(args []string) *Config {
	cfg := Default()

	for _, name := range configFiles {
		data, err := os.ReadFile(name)
		if err != nil {
			continue
		}
		fileCfg := Default()
		if err := yaml.Unmarshal(data, fileCfg); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Ignoring %s: %v\n", name, err)
			break
		}
		cfg = fileCfg
		break
	}

	if env := os.Getenv(EnvMode); env != "" {
		cfg.Mode = Mode(strings.ToLower(env))
	}

	fs := flag.NewFlagSet("lxndr", flag.ContinueOnError)
	baseURL := fs.String("baseurl", cfg.BaseURL, "Base URL of the published site")
	contentDir := fs.String("content", cfg.ContentDir, "Content directory")
	outputDir := fs.String("out", cfg.OutputDir, "Output directory")
	cacheDir := fs.String("cache", cfg.CacheDir, "Syntax highlighting cache directory")
	dev := fs.Bool("dev", cfg.Mode == ModeDevelopment, "Development mode (allows drafts)")
	drafts := fs.Bool("drafts", cfg.IncludeDrafts, "Include drafts (development mode only)")
	workers := fs.Int("workers", cfg.Workers, "Number of highlight workers")
	verbose := fs.Bool("v", cfg.Verbose, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %v\n", err)
	}

	cfg.BaseURL = *baseURL
	cfg.ContentDir = *contentDir
	cfg.OutputDir = *outputDir
	cfg.CacheDir = *cacheDir
	if *dev {
		cfg.Mode = ModeDevelopment
	}
	cfg.IncludeDrafts = *drafts
	cfg.Workers = *workers
	cfg.Verbose = *verbose

	cfg.validate()
	return cfg
}

// IsDev reports whether the build runs in development mode.
func (c *Config) IsDev() bool {
	return c.Mode == ModeDevelopment
}

// SetDevMode switches between development and production mode.
func (c *Config) SetDevMode(isDev bool) {
	if isDev {
		c.Mode = ModeDevelopment
	} else {
		c.Mode = ModeProduction
	}
}

// Description returns the blog description for locale, falling back to English.
func (c *Config) Description(locale models.Locale) string {
	if d, ok := c.Descriptions[locale]; ok && d != "" {
		return d
	}
	return c.Descriptions[models.LocaleEN]
}

// validate normalizes paths and clamps values to sane bounds
func (c *Config) validate() {
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")

	if c.Mode != ModeDevelopment {
		c.Mode = ModeProduction
	}

	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.PostsDir == "" {
		c.PostsDir = filepath.Join(c.ContentDir, "posts")
	}
	if c.DraftsDir == "" {
		c.DraftsDir = filepath.Join(c.ContentDir, "drafts")
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.CacheDir == "" {
		c.CacheDir = filepath.Join(".cache", "syntax-highlighting")
	}

	if c.Highlight.LightTheme == "" {
		c.Highlight.LightTheme = "github"
	}
	if c.Highlight.DarkTheme == "" {
		c.Highlight.DarkTheme = "monokai"
	}

	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Workers > maxWorkers {
		c.Workers = maxWorkers
	}

	if c.Descriptions == nil {
		c.Descriptions = Default().Descriptions
	}
}
