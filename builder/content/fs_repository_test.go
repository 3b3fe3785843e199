package content

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/parser"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/testutil"
)

const (
	postsDir  = "content/posts"
	draftsDir = "content/drafts"
)

func newTestRepo(files map[string]string, isDev bool) *FSRepository {
	fs := testutil.CreateTestFilesystemWithContent(files)
	return NewFSRepository(fs, postsDir,
		WithDrafts(draftsDir),
		WithDevMode(isDev),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
}

func src(slug string, locale models.Locale, date string, tags ...string) string {
	return testutil.PostSource(slug, locale, date, tags, "Body of "+slug+".\n")
}

// exampleFiles holds the three-post scenario in both locales plus drafts.
func exampleFiles() map[string]string {
	files := map[string]string{}
	files[testutil.PostPath(postsDir, "a-b", models.LocaleEN)] = src("a-b", models.LocaleEN, "2024-01-01", "a", "b")
	files[testutil.PostPath(postsDir, "b-c", models.LocaleEN)] = src("b-c", models.LocaleEN, "2024-03-01", "b", "c")
	files[testutil.PostPath(postsDir, "a", models.LocaleEN)] = src("a", models.LocaleEN, "2024-02-01", "a")
	files[testutil.PostPath(postsDir, "a-b", models.LocalePTBR)] = src("a-b", models.LocalePTBR, "2024-01-05", "a", "b")
	files[testutil.PostPath(draftsDir, "wip", models.LocaleEN)] = src("wip", models.LocaleEN, "2024-04-01", "draft-only", "a")
	files[testutil.PostPath(draftsDir, "wip-pt", models.LocalePTBR)] = src("wip-pt", models.LocalePTBR, "2024-04-01")
	files[postsDir+"/README.txt"] = "not a post"
	return files
}

func slugs(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func TestListPosts_SortedNewestFirst(t *testing.T) {
	repo := newTestRepo(exampleFiles(), false)

	posts, err := GetAllPosts(repo, models.LocaleEN, false)
	if err != nil {
		t.Fatalf("GetAllPosts() error: %v", err)
	}

	got := slugs(posts)
	want := []string{"b-c", "a", "a-b"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := 1; i < len(posts); i++ {
		if posts[i].DateObj.After(posts[i-1].DateObj) {
			t.Errorf("posts[%d] newer than posts[%d]", i, i-1)
		}
	}
	for _, p := range posts {
		if p.ReadingTime < 1 {
			t.Errorf("%s: ReadingTime = %d", p.Slug, p.ReadingTime)
		}
		if p.Locale != models.LocaleEN {
			t.Errorf("%s: Locale = %q", p.Slug, p.Locale)
		}
		if p.Draft {
			t.Errorf("%s: marked as draft", p.Slug)
		}
	}
}

func TestListPosts_Drafts(t *testing.T) {
	tests := []struct {
		name          string
		isDev         bool
		includeDrafts bool
		wantDraft     bool
	}{
		{name: "production ignores request", isDev: false, includeDrafts: true, wantDraft: false},
		{name: "development without request", isDev: true, includeDrafts: false, wantDraft: false},
		{name: "development with request", isDev: true, includeDrafts: true, wantDraft: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(exampleFiles(), tt.isDev)
			posts, err := repo.ListPosts(models.LocaleEN, tt.includeDrafts)
			if err != nil {
				t.Fatalf("ListPosts() error: %v", err)
			}

			var found *models.Post
			for i := range posts {
				if posts[i].Slug == "wip" {
					found = &posts[i]
				}
			}
			if (found != nil) != tt.wantDraft {
				t.Fatalf("draft present = %v, want %v (%v)", found != nil, tt.wantDraft, slugs(posts))
			}
			if found != nil {
				if !found.Draft {
					t.Error("draft post not flagged as draft")
				}
				if posts[0].Slug != "wip" {
					t.Errorf("newest draft should sort first, got %v", slugs(posts))
				}
			}
		})
	}
}

func TestListPosts_LocaleSeparation(t *testing.T) {
	repo := newTestRepo(exampleFiles(), false)

	posts, err := repo.ListPosts(models.LocalePTBR, false)
	if err != nil {
		t.Fatalf("ListPosts() error: %v", err)
	}
	if got := slugs(posts); len(got) != 1 || got[0] != "a-b" {
		t.Errorf("pt-BR posts = %v, want [a-b]", got)
	}

	if _, err := repo.ListPosts(models.Locale("fr"), false); !errors.Is(err, models.ErrInvalidLocale) {
		t.Errorf("error = %v, want ErrInvalidLocale", err)
	}
}

func TestListPosts_MissingDirectories(t *testing.T) {
	repo := NewFSRepository(afero.NewMemMapFs(), "nowhere", WithDrafts("nothing"), WithDevMode(true))

	posts, err := repo.ListPosts(models.LocaleEN, true)
	if err != nil {
		t.Fatalf("ListPosts() error: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("got %d posts, want 0", len(posts))
	}
}

func TestListPosts_MalformedFileNamed(t *testing.T) {
	files := exampleFiles()
	bad := testutil.PostPath(postsDir, "broken", models.LocaleEN)
	files[bad] = "---\ntitle: [unclosed\n---\nbody"
	repo := newTestRepo(files, false)

	_, err := repo.ListPosts(models.LocaleEN, false)
	if err == nil {
		t.Fatal("expected an error for a malformed file")
	}
	if !strings.Contains(err.Error(), bad) {
		t.Errorf("error %q does not name %s", err, bad)
	}

	// The other locale does not read the broken file.
	if _, err := repo.ListPosts(models.LocalePTBR, false); err != nil {
		t.Errorf("pt-BR listing failed: %v", err)
	}
}

func TestListPosts_MissingFieldsReported(t *testing.T) {
	bad := testutil.PostPath(postsDir, "untitled", models.LocaleEN)
	repo := newTestRepo(map[string]string{
		bad: "---\nslug: untitled\nlocale: en\ndate: 2024-01-01\n---\nbody",
	}, false)

	_, err := repo.ListPosts(models.LocaleEN, false)
	if !errors.Is(err, parser.ErrMissingField) {
		t.Errorf("error = %v, want ErrMissingField", err)
	}
}

func TestListPosts_FilenameMismatch(t *testing.T) {
	path := testutil.PostPath(postsDir, "renamed", models.LocaleEN)
	repo := newTestRepo(map[string]string{
		path: src("original", models.LocaleEN, "2024-01-01"),
	}, false)

	_, err := repo.ListPosts(models.LocaleEN, false)
	if !errors.Is(err, ErrFilenameMismatch) {
		t.Errorf("error = %v, want ErrFilenameMismatch", err)
	}
}

func TestListPosts_SlugsUnique(t *testing.T) {
	files := exampleFiles()
	// Same slug published and drafted: the published copy wins.
	files[testutil.PostPath(draftsDir, "a", models.LocaleEN)] = src("a", models.LocaleEN, "2025-01-01")
	repo := newTestRepo(files, true)

	posts, err := repo.ListPosts(models.LocaleEN, true)
	if err != nil {
		t.Fatalf("ListPosts() error: %v", err)
	}

	seen := map[string]bool{}
	for _, p := range posts {
		if seen[p.Slug] {
			t.Fatalf("duplicate slug %q in %v", p.Slug, slugs(posts))
		}
		seen[p.Slug] = true
		if p.Slug == "a" && (p.Draft || p.Date != "2024-02-01") {
			t.Errorf("kept the wrong copy of %q: %+v", p.Slug, p.PostFrontmatter)
		}
	}
}

func TestListPosts_MarkdownExtension(t *testing.T) {
	files := exampleFiles()
	files[postsDir+"/legacy.en.md"] = src("legacy", models.LocaleEN, "2023-06-01")
	repo := newTestRepo(files, false)

	posts, err := repo.ListPosts(models.LocaleEN, false)
	if err != nil {
		t.Fatalf("ListPosts() error: %v", err)
	}
	if got := strings.Join(slugs(posts), ","); got != "b-c,a,a-b,legacy" {
		t.Errorf("ListPosts() = %s", got)
	}

	post, err := repo.FindPost("legacy", models.LocaleEN)
	if err != nil || post == nil {
		t.Fatalf("FindPost() = %v, %v", post, err)
	}
}

func TestFindPost(t *testing.T) {
	files := exampleFiles()
	files[testutil.PostPath(draftsDir, "b-c", models.LocaleEN)] = src("b-c", models.LocaleEN, "2030-01-01")
	repo := newTestRepo(files, false)

	tests := []struct {
		name      string
		slug      string
		locale    models.Locale
		wantNil   bool
		wantDraft bool
		wantDate  string
	}{
		{name: "published", slug: "a", locale: models.LocaleEN, wantDate: "2024-02-01"},
		{name: "posts before drafts", slug: "b-c", locale: models.LocaleEN, wantDate: "2024-03-01"},
		{name: "draft found outside dev mode", slug: "wip", locale: models.LocaleEN, wantDraft: true, wantDate: "2024-04-01"},
		{name: "other locale", slug: "a-b", locale: models.LocalePTBR, wantDate: "2024-01-05"},
		{name: "missing in locale", slug: "a", locale: models.LocalePTBR, wantNil: true},
		{name: "missing", slug: "nope", locale: models.LocaleEN, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := GetPostBySlug(repo, tt.slug, tt.locale)
			if err != nil {
				t.Fatalf("GetPostBySlug() error: %v", err)
			}
			if tt.wantNil {
				if post != nil {
					t.Errorf("got %+v, want nil", post.PostFrontmatter)
				}
				return
			}
			if post == nil {
				t.Fatal("got nil post")
			}
			if post.Slug != tt.slug || post.Date != tt.wantDate || post.Draft != tt.wantDraft {
				t.Errorf("got slug=%s date=%s draft=%v", post.Slug, post.Date, post.Draft)
			}
			if !strings.Contains(post.Content, "Body of "+tt.slug) {
				t.Errorf("Content = %q", post.Content)
			}
		})
	}
}

func TestGetAllTags(t *testing.T) {
	tests := []struct {
		name  string
		isDev bool
		want  []string
	}{
		{name: "production", isDev: false, want: []string{"a", "b", "c"}},
		{name: "development includes draft tags", isDev: true, want: []string{"a", "b", "c", "draft-only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, err := GetAllTags(newTestRepo(exampleFiles(), tt.isDev), models.LocaleEN)
			if err != nil {
				t.Fatalf("GetAllTags() error: %v", err)
			}
			if strings.Join(tags, ",") != strings.Join(tt.want, ",") {
				t.Errorf("GetAllTags() = %v, want %v", tags, tt.want)
			}
		})
	}
}

func TestGetPostsByTag(t *testing.T) {
	repo := newTestRepo(exampleFiles(), true)

	posts, err := GetPostsByTag(repo, "a", models.LocaleEN)
	if err != nil {
		t.Fatalf("GetPostsByTag() error: %v", err)
	}
	// The draft tagged "a" is excluded even in development mode.
	if got := strings.Join(slugs(posts), ","); got != "a,a-b" {
		t.Errorf("GetPostsByTag() = %s, want a,a-b", got)
	}
}

func TestNewPost_ReadingTime(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{
			name:   "estimated from body",
			source: testutil.PostSource("long", models.LocaleEN, "2024-01-01", nil, strings.Repeat("word ", 450)),
			want:   3,
		},
		{
			name: "frontmatter value wins",
			source: "---\ntitle: Set\ndate: 2024-01-01\nlocale: en\nslug: set\nreadingTime: 7\n---\n" +
				strings.Repeat("word ", 450),
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := NewPost([]byte(tt.source))
			if err != nil {
				t.Fatalf("NewPost() error: %v", err)
			}
			if post.ReadingTime != tt.want {
				t.Errorf("ReadingTime = %d, want %d", post.ReadingTime, tt.want)
			}
			if post.PostFrontmatter.ReadingTime != post.ReadingTime {
				t.Errorf("frontmatter ReadingTime = %d, post = %d", post.PostFrontmatter.ReadingTime, post.ReadingTime)
			}
			if post.DateObj.IsZero() {
				t.Error("DateObj not set")
			}
		})
	}
}
