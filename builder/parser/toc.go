package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	goldparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

const (
	minTOCLevel = 2
	maxTOCLevel = 3
)

// tocParser is CommonMark without HTML blocks. In MDX a line such as
// <Callout> opens a component, not a raw HTML block that swallows every line
// up to the next blank one, so headings directly inside it must still parse.
var tocParser = goldparser.NewParser(
	goldparser.WithBlockParsers(
		util.Prioritized(goldparser.NewSetextHeadingParser(), 100),
		util.Prioritized(goldparser.NewThematicBreakParser(), 200),
		util.Prioritized(goldparser.NewListParser(), 300),
		util.Prioritized(goldparser.NewListItemParser(), 400),
		util.Prioritized(goldparser.NewCodeBlockParser(), 500),
		util.Prioritized(goldparser.NewATXHeadingParser(), 600),
		util.Prioritized(goldparser.NewFencedCodeBlockParser(), 700),
		util.Prioritized(goldparser.NewBlockquoteParser(), 800),
		util.Prioritized(goldparser.NewParagraphParser(), 1000),
	),
	goldparser.WithInlineParsers(goldparser.DefaultInlineParsers()...),
	goldparser.WithParagraphTransformers(goldparser.DefaultParagraphTransformers()...),
)

// GenerateTOC returns the level 2 and 3 ATX headings of body in document order,
// including those nested in JSX components. Headings inside fenced code are
// ignored. Repeated heading text gets -2, -3 suffixed ids so every anchor in a
// document is unique.
func GenerateTOC(body string) []models.TOCHeading {
	source := []byte(body)
	doc := tocParser.Parse(text.NewReader(source))

	var headings []models.TOCHeading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		heading := n.(*ast.Heading)
		if heading.Level < minTOCLevel || heading.Level > maxTOCLevel {
			return ast.WalkSkipChildren, nil
		}

		lines := heading.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		first := lines.At(0)
		if !isATXLine(source, first.Start) {
			return ast.WalkSkipChildren, nil
		}

		var raw bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			raw.Write(seg.Value(source))
		}
		headingText := strings.TrimSpace(raw.String())
		if headingText == "" {
			return ast.WalkSkipChildren, nil
		}

		headings = append(headings, models.TOCHeading{
			Level: heading.Level,
			Text:  headingText,
			ID:    Slugify(headingText),
		})
		return ast.WalkSkipChildren, nil
	})

	ids := make([]string, len(headings))
	for i, h := range headings {
		ids[i] = h.ID
	}
	for i, id := range UniqueIDs(ids) {
		headings[i].ID = id
	}
	return headings
}

// isATXLine reports whether the line holding offset starts with '#', which
// separates "## Title" headings from setext underlined ones.
func isATXLine(source []byte, offset int) bool {
	start := offset
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	line := bytes.TrimLeft(source[start:offset], " \t>")
	return len(line) > 0 && line[0] == '#'
}
