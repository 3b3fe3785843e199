package index

import (
	"sort"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// Tags returns the distinct tags of posts sorted lexicographically.
func Tags(posts []models.Post) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

// TagCounts returns every tag with the number of posts carrying it, most used
// first and alphabetical among equals.
func TagCounts(posts []models.Post) []models.TagData {
	counts := make(map[string]int)
	for _, p := range posts {
		seen := make(map[string]struct{}, len(p.Tags))
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			counts[t]++
		}
	}

	data := make([]models.TagData, 0, len(counts))
	for name, count := range counts {
		data = append(data, models.TagData{Name: name, Count: count})
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Count != data[j].Count {
			return data[i].Count > data[j].Count
		}
		return data[i].Name < data[j].Name
	})
	return data
}

// PostsByTag keeps the posts tagged with tag, preserving their order.
func PostsByTag(posts []models.Post, tag string) []models.Post {
	out := []models.Post{}
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}
