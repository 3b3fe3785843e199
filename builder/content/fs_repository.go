package content

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/parser"
)

// contentExts are the accepted post file extensions, tried in this order.
var contentExts = []string{".mdx", ".md"}

// FSRepository reads flat "<slug>.<locale>.mdx" (or .md) files from a posts root
// and, in development mode, a drafts root.
type FSRepository struct {
	fs        afero.Fs
	postsDir  string
	draftsDir string
	isDev     bool
	logger    *slog.Logger
}

// Option configures an FSRepository.
type Option func(*FSRepository)

// WithDrafts sets the drafts root.
func WithDrafts(dir string) Option {
	return func(r *FSRepository) { r.draftsDir = dir }
}

// WithDevMode allows drafts to be listed when callers ask for them.
func WithDevMode(isDev bool) Option {
	return func(r *FSRepository) { r.isDev = isDev }
}

// WithLogger sets the logger used for skipped duplicates.
func WithLogger(logger *slog.Logger) Option {
	return func(r *FSRepository) { r.logger = logger }
}

// NewFSRepository creates a repository rooted at postsDir on fs.
func NewFSRepository(fs afero.Fs, postsDir string, opts ...Option) *FSRepository {
	r := &FSRepository{
		fs:       fs,
		postsDir: postsDir,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListPosts implements Repository. Drafts are merged in only when includeDrafts
// is set and the repository runs in development mode. A file that fails to
// parse aborts the listing with an error naming it.
func (r *FSRepository) ListPosts(locale models.Locale, includeDrafts bool) ([]models.Post, error) {
	if !locale.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidLocale, locale)
	}

	roots := []root{{dir: r.postsDir}}
	if includeDrafts && r.isDev && r.draftsDir != "" {
		roots = append(roots, root{dir: r.draftsDir, draft: true})
	}

	var posts []models.Post
	seen := make(map[string]string)
	for _, rt := range roots {
		files, err := r.localeFiles(rt.dir, locale)
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			post, err := r.load(path, rt.draft)
			if err != nil {
				return nil, err
			}
			if first, dup := seen[post.Slug]; dup {
				r.logger.Warn("Skipping duplicate slug", "slug", post.Slug, "locale", locale, "path", path, "kept", first)
				continue
			}
			seen[post.Slug] = path
			posts = append(posts, post)
		}
	}

	SortByDate(posts)
	return posts, nil
}

// FindPost implements Repository. Both roots are searched regardless of mode;
// the posts root takes precedence over drafts.
func (r *FSRepository) FindPost(slug string, locale models.Locale) (*models.Post, error) {
	if !locale.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidLocale, locale)
	}

	roots := []root{{dir: r.postsDir}}
	if r.draftsDir != "" {
		roots = append(roots, root{dir: r.draftsDir, draft: true})
	}

	want := slug + "." + string(locale)
	for _, rt := range roots {
		names, err := r.readDir(rt.dir)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if stem, ok := trimContentExt(name); ok && stem == want {
				post, err := r.load(filepath.Join(rt.dir, name), rt.draft)
				if err != nil {
					return nil, err
				}
				return &post, nil
			}
		}
	}
	return nil, nil
}

type root struct {
	dir   string
	draft bool
}

// localeFiles lists the content files of locale directly under dir in lexical order.
func (r *FSRepository) localeFiles(dir string, locale models.Locale) ([]string, error) {
	names, err := r.readDir(dir)
	if err != nil {
		return nil, err
	}
	suffix := "." + string(locale)
	var files []string
	for _, name := range names {
		if stem, ok := trimContentExt(name); ok && strings.HasSuffix(stem, suffix) && len(stem) > len(suffix) {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// readDir returns the regular file names in dir sorted lexically; a missing
// directory yields no names and no error.
func (r *FSRepository) readDir(dir string) ([]string, error) {
	infos, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: read %s: %w", dir, err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (r *FSRepository) load(path string, draft bool) (models.Post, error) {
	source, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return models.Post{}, fmt.Errorf("content: %s: %w", path, err)
	}
	post, err := NewPost(source)
	if err != nil {
		return models.Post{}, fmt.Errorf("content: %s: %w", path, err)
	}
	if err := checkFilename(path, post); err != nil {
		return models.Post{}, fmt.Errorf("content: %s: %w", path, err)
	}
	post.Draft = draft
	post.SourcePath = path
	return post, nil
}

// ErrFilenameMismatch is returned when a file's name disagrees with its
// frontmatter slug or locale, which would make lookups by slug miss it.
var ErrFilenameMismatch = errors.New("filename does not match frontmatter")

func checkFilename(path string, post models.Post) error {
	stem, _ := trimContentExt(filepath.Base(path))
	want := post.Slug + "." + string(post.Locale)
	if stem != want {
		return fmt.Errorf("%w: want %s.mdx for slug %q, locale %q", ErrFilenameMismatch, want, post.Slug, post.Locale)
	}
	return nil
}

// NewPost parses a content file into a Post, filling in the reading time when
// the frontmatter omits it.
func NewPost(source []byte) (models.Post, error) {
	fm, body, err := parser.ParseFrontmatter(source)
	if err != nil {
		return models.Post{}, err
	}
	date, err := parser.ParseDate(fm.Date)
	if err != nil {
		return models.Post{}, err
	}

	if fm.ReadingTime == 0 {
		fm.ReadingTime = parser.ReadingTime(body)
	}

	return models.Post{
		PostFrontmatter: fm,
		Content:         body,
		DateObj:         date,
	}, nil
}

// SortByDate orders posts newest first; equal dates keep their relative order.
func SortByDate(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].DateObj.After(posts[j].DateObj)
	})
}

func trimContentExt(name string) (string, bool) {
	for _, ext := range contentExts {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext), true
		}
	}
	return "", false
}
