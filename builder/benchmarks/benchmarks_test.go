// Package benchmarks provides performance tests for the content pipeline.
// Run with: go test -bench=. -benchmem ./builder/benchmarks/
package benchmarks

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/content"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/highlight"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/index"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/mocks"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/parser"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/testutil"
)

// BenchmarkNewPost parses frontmatter and estimates reading time
func BenchmarkNewPost(b *testing.B) {
	src := []byte(testutil.PostSource("bench", models.LocaleEN, "2024-03-01",
		[]string{"go", "react"}, strings.Repeat(testutil.CreateTestMarkdown(), 20)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = content.NewPost(src)
	}
}

// BenchmarkReadingTime tests word counting on bodies of various sizes
func BenchmarkReadingTime(b *testing.B) {
	for _, words := range []int{200, 2000, 20000} {
		b.Run(fmt.Sprintf("Words-%d", words), func(b *testing.B) {
			body := strings.Repeat("word ", words)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = parser.ReadingTime(body)
			}
		})
	}
}

// BenchmarkGenerateTOC tests heading extraction
func BenchmarkGenerateTOC(b *testing.B) {
	body := strings.Repeat(testutil.CreateTestMarkdown(), 50)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = parser.GenerateTOC(body)
	}
}

// BenchmarkSlugify tests heading id generation
func BenchmarkSlugify(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = parser.Slugify("Configuração Avançada do Next.js com TypeScript")
	}
}

// BenchmarkSortPosts tests post sorting performance
func BenchmarkSortPosts(b *testing.B) {
	sizes := []int{10, 50, 100, 500, 1000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Size-%d", size), func(b *testing.B) {
			posts := createMockPosts(size)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				// Create a copy to avoid sorting already sorted slice
				postsCopy := make([]models.Post, len(posts))
				copy(postsCopy, posts)
				content.SortByDate(postsCopy)
			}
		})
	}
}

// BenchmarkRelatedPosts tests scoring against every other post
func BenchmarkRelatedPosts(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("Size-%d", size), func(b *testing.B) {
			posts := createMockPosts(size)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = index.RelatedPosts(posts[0], posts, index.DefaultRelatedLimit)
			}
		})
	}
}

// BenchmarkCacheKey tests BLAKE3 key derivation
func BenchmarkCacheKey(b *testing.B) {
	code := strings.Repeat("fmt.Println(\"hello\")\n", 50)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = highlight.CacheKey(code, "go", highlight.DefaultDarkTheme)
	}
}

// BenchmarkHighlight compares a cold render with a cache hit
func BenchmarkHighlight(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	code := "func main() {\n\t// greet\n\tfmt.Println(\"hi\")\n}"

	b.Run("Uncached", func(b *testing.B) {
		h := highlight.New(highlight.WithLogger(logger))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = h.Highlight(code, "go")
		}
	})

	b.Run("Cached", func(b *testing.B) {
		h := highlight.New(highlight.WithCache(mocks.NewMockCache()), highlight.WithLogger(logger))
		_ = h.Highlight(code, "go")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = h.Highlight(code, "go")
		}
	})
}

var benchTags = []string{"go", "react", "nextjs", "typescript", "css", "testing", "devops", "rust"}

func createMockPosts(count int) []models.Post {
	posts := make([]models.Post, count)
	for i := 0; i < count; i++ {
		date := fmt.Sprintf("20%02d-%02d-%02d", 10+i%15, 1+i%12, 1+i%28)
		tags := []string{benchTags[i%len(benchTags)], benchTags[(i*3)%len(benchTags)]}
		posts[i] = testutil.CreateSamplePost(fmt.Sprintf("post-%d", i), date, tags...)
	}
	return posts
}
