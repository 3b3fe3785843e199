// Package content discovers post files on disk and turns them into models.Post
// records. The filesystem is the database: every call re-reads the content roots.
package content

import (
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/index"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// Repository is the query surface the build pipeline depends on, so the on-disk
// layout can change without touching callers.
type Repository interface {
	// ListPosts returns the posts of locale sorted by date, newest first.
	ListPosts(locale models.Locale, includeDrafts bool) ([]models.Post, error)
	// FindPost returns the post with slug, or nil when there is none.
	FindPost(slug string, locale models.Locale) (*models.Post, error)
}

// GetAllPosts lists the posts of locale, newest first.
func GetAllPosts(repo Repository, locale models.Locale, includeDrafts bool) ([]models.Post, error) {
	return repo.ListPosts(locale, includeDrafts)
}

// GetPostBySlug returns the post with slug or nil when it does not exist.
func GetPostBySlug(repo Repository, slug string, locale models.Locale) (*models.Post, error) {
	return repo.FindPost(slug, locale)
}

// GetAllTags returns the distinct, sorted tags of every post of locale,
// drafts included when the repository allows them.
func GetAllTags(repo Repository, locale models.Locale) ([]string, error) {
	posts, err := repo.ListPosts(locale, true)
	if err != nil {
		return nil, err
	}
	return index.Tags(posts), nil
}

// GetPostsByTag returns the published (non-draft) posts of locale tagged with
// tag, newest first.
func GetPostsByTag(repo Repository, tag string, locale models.Locale) ([]models.Post, error) {
	posts, err := repo.ListPosts(locale, false)
	if err != nil {
		return nil, err
	}
	return index.PostsByTag(posts, tag), nil
}
