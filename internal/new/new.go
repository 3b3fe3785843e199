package new

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	goslug "github.com/gosimple/slug"
	"github.com/spf13/afero"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

const maxSlugLength = 100

// ErrExists is returned instead of overwriting an existing post.
var ErrExists = errors.New("file already exists")

// Post describes the file to scaffold.
type Post struct {
	Title      string
	Locale     models.Locale
	Draft      bool
	ContentDir string
	Author     string
}

// sanitizeSlug converts a title to a safe filename slug
func sanitizeSlug(title string) string {
	slug := goslug.Make(title)
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

// Run creates a new post file from the command-line arguments. Flags may
// appear before or after the title words.
func Run(args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	locale := fs.String("locale", string(models.LocaleEN), "Post locale (en or pt-BR)")
	draft := fs.Bool("draft", false, "Create the post under drafts")
	contentDir := fs.String("content", "content", "Content directory")
	author := fs.String("author", "Alexandre", "Post author")

	var words []string
	for {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		words = append(words, fs.Arg(0))
		args = fs.Args()[1:]
	}
	if len(words) == 0 {
		return errors.New(`usage: lxndr new "My New Post Title" [-locale pt-BR] [-draft]`)
	}

	loc, err := models.ParseLocale(*locale)
	if err != nil {
		return err
	}

	path, err := Create(afero.NewOsFs(), Post{
		Title:      strings.Join(words, " "),
		Locale:     loc,
		Draft:      *draft,
		ContentDir: *contentDir,
		Author:     *author,
	}, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("✅ Created: %s\n", path)
	return nil
}

// Create writes a frontmatter template for p and returns its path,
// content/{posts|drafts}/<slug>.<locale>.mdx.
func Create(fs afero.Fs, p Post, now time.Time) (string, error) {
	slug := sanitizeSlug(p.Title)
	if slug == "" {
		return "", errors.New("title produces empty slug after sanitization")
	}

	dir := "posts"
	if p.Draft {
		dir = "drafts"
	}
	path := filepath.Join(p.ContentDir, dir, slug+"."+string(p.Locale)+".mdx")

	if exists, _ := afero.Exists(fs, path); exists {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	content := fmt.Sprintf(`---
title: %q
description: "Enter a short description here..."
date: %s
tags: []
author: %q
locale: %s
slug: %s
---

## %s

Start writing here...
`, p.Title, now.Format("2006-01-02"), p.Author, p.Locale, slug, introHeading(p.Locale))

	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func introHeading(locale models.Locale) string {
	if locale == models.LocalePTBR {
		return "Introdução"
	}
	return "Introduction"
}
