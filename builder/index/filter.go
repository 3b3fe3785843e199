package index

import (
	"sort"
	"strings"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// SortOrder selects how Filter orders its result.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// Query is the blog listing filter: a free-text term, a set of tags that must
// all be present, and a date order.
type Query struct {
	Term string
	Tags []string
	Sort SortOrder
}

// Filter applies q to posts and returns a new slice; posts is not modified.
// The term matches case-insensitively against title, description and tags.
func Filter(posts []models.Post, q Query) []models.Post {
	term := strings.ToLower(strings.TrimSpace(q.Term))

	out := []models.Post{}
	for _, p := range posts {
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if !hasAllTags(p, q.Tags) {
			continue
		}
		out = append(out, p)
	}

	if q.Sort == SortOldest {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DateObj.Before(out[j].DateObj)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DateObj.After(out[j].DateObj)
		})
	}
	return out
}

func matchesTerm(p models.Post, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

func hasAllTags(p models.Post, tags []string) bool {
	for _, t := range tags {
		if !p.HasTag(t) {
			return false
		}
	}
	return true
}
