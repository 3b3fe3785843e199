package parser

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify derives a heading anchor id: lowercase, diacritics stripped, anything
// outside [A-Za-z0-9_], whitespace and '-' dropped, whitespace runs turned into a
// single hyphen. Slugify("Café com Código") == "cafe-com-codigo".
func Slugify(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, strings.ToLower(text))
	if err != nil {
		stripped = strings.ToLower(text)
	}

	var b strings.Builder
	b.Grow(len(stripped))
	inSpace := false
	for _, r := range stripped {
		switch {
		case isWordRune(r) || r == '-':
			if inSpace {
				b.WriteByte('-')
				inSpace = false
			}
			b.WriteRune(r)
		case unicode.IsSpace(r):
			inSpace = true
		}
	}
	if inSpace {
		b.WriteByte('-')
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return slug
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// UniqueIDs suffixes repeated ids in place: the first occurrence keeps its id,
// later ones become id-2, id-3, ...
func UniqueIDs(ids []string) []string {
	seen := make(map[string]int, len(ids))
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		taken[id] = true
	}
	for i, id := range ids {
		seen[id]++
		if seen[id] == 1 {
			continue
		}
		n := seen[id]
		candidate := id + "-" + strconv.Itoa(n)
		for taken[candidate] {
			n++
			candidate = id + "-" + strconv.Itoa(n)
		}
		seen[id] = n
		taken[candidate] = true
		ids[i] = candidate
	}
	return ids
}
