// Parses post frontmatter, estimates reading time and extracts tables of contents
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// DateLayout is the ISO-8601 calendar date used by content files.
const DateLayout = "2006-01-02"

// yamlFormat restricts front matter to "---" delimited YAML blocks.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// FrontmatterError lists every problem found in one frontmatter block.
type FrontmatterError struct {
	Problems []error
}

func (e *FrontmatterError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "invalid frontmatter: " + strings.Join(msgs, "; ")
}

func (e *FrontmatterError) Unwrap() []error {
	return e.Problems
}

var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidReadTime = errors.New("readingTime must be a positive integer")
)

// envelope mirrors the YAML block. Date is a node so unquoted timestamps keep
// their source text.
type envelope struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Date        yaml.Node `yaml:"date"`
	Tags        []string  `yaml:"tags"`
	Author      string    `yaml:"author"`
	Locale      string    `yaml:"locale"`
	Slug        string    `yaml:"slug"`
	Image       string    `yaml:"image"`
	ReadingTime *int      `yaml:"readingTime"`
}

// ParseFrontmatter splits source into validated metadata and the remaining
// body. A missing or malformed block is an error; callers treat it as fatal.
func ParseFrontmatter(source []byte) (models.PostFrontmatter, string, error) {
	var env envelope
	body, err := frontmatter.MustParse(bytes.NewReader(source), &env, yamlFormat)
	if err != nil {
		return models.PostFrontmatter{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}

	fm := models.PostFrontmatter{
		Title:       strings.TrimSpace(env.Title),
		Description: strings.TrimSpace(env.Description),
		Date:        strings.TrimSpace(env.Date.Value),
		Tags:        env.Tags,
		Author:      strings.TrimSpace(env.Author),
		Slug:        strings.TrimSpace(env.Slug),
		Image:       env.Image,
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	var problems []error
	if fm.Title == "" {
		problems = append(problems, fmt.Errorf("%w: title", ErrMissingField))
	}
	if fm.Slug == "" {
		problems = append(problems, fmt.Errorf("%w: slug", ErrMissingField))
	}
	if fm.Date == "" {
		problems = append(problems, fmt.Errorf("%w: date", ErrMissingField))
	} else if _, err := ParseDate(fm.Date); err != nil {
		problems = append(problems, err)
	}
	if env.Locale == "" {
		problems = append(problems, fmt.Errorf("%w: locale", ErrMissingField))
	} else if loc, err := models.ParseLocale(env.Locale); err != nil {
		problems = append(problems, err)
	} else {
		fm.Locale = loc
	}
	if env.ReadingTime != nil {
		if *env.ReadingTime < 1 {
			problems = append(problems, fmt.Errorf("%w: got %d", ErrInvalidReadTime, *env.ReadingTime))
		} else {
			fm.ReadingTime = *env.ReadingTime
		}
	}

	if len(problems) > 0 {
		return models.PostFrontmatter{}, "", &FrontmatterError{Problems: problems}
	}
	return fm, string(body), nil
}

// ParseDate accepts a calendar date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
