// Package index derives read-only views over a list of posts: tag sets,
// per-tag listings, related-post rankings and the blog page filter.
package index

import (
	"sort"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// DefaultRelatedLimit is used when RelatedPosts is called with limit <= 0.
const DefaultRelatedLimit = 3

// RelatedPosts ranks the posts in all by the number of tags they share with
// current. The current post and posts sharing no tag are excluded. Ties keep
// the order they have in all.
func RelatedPosts(current models.Post, all []models.Post, limit int) []models.Post {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	tags := make(map[string]struct{}, len(current.Tags))
	for _, t := range current.Tags {
		tags[t] = struct{}{}
	}

	type scored struct {
		post  models.Post
		score int
	}
	var candidates []scored
	for _, p := range all {
		if p.Slug == current.Slug {
			continue
		}
		if score := sharedTags(tags, p.Tags); score > 0 {
			candidates = append(candidates, scored{post: p, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	related := make([]models.Post, len(candidates))
	for i, c := range candidates {
		related[i] = c.post
	}
	return related
}

// sharedTags counts the distinct tags of other that appear in set.
func sharedTags(set map[string]struct{}, other []string) int {
	n := 0
	counted := make(map[string]struct{}, len(other))
	for _, t := range other {
		if _, dup := counted[t]; dup {
			continue
		}
		counted[t] = struct{}{}
		if _, ok := set[t]; ok {
			n++
		}
	}
	return n
}

// RelatedSlugs is RelatedPosts reduced to slugs, as stored in the post index.
func RelatedSlugs(current models.Post, all []models.Post, limit int) []string {
	related := RelatedPosts(current, all, limit)
	slugs := make([]string, len(related))
	for i, p := range related {
		slugs[i] = p.Slug
	}
	return slugs
}
