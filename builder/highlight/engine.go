package highlight

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var (
	ErrUnknownLanguage = errors.New("no lexer for language")
	ErrUnknownStyle    = errors.New("unknown style")
)

// ChromaEngine renders with chroma using inline styles, so the HTML carries
// its own colours and needs no stylesheet.
type ChromaEngine struct {
	formatter *chromahtml.Formatter
	// derived styles keyed by "style\x00colour"; the formatter caches CSS per
	// *chroma.Style, so each variant is built once
	recolored sync.Map
}

func NewChromaEngine() *ChromaEngine {
	return &ChromaEngine{
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),
			chromahtml.TabWidth(2),
		),
	}
}

func (e *ChromaEngine) Render(code, language, style, commentColor string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
	}
	st, ok := styles.Registry[style]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownStyle, style)
	}
	if commentColor != "" {
		var err error
		if st, err = e.withCommentColor(st, commentColor); err != nil {
			return "", fmt.Errorf("style %s: %w", style, err)
		}
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", language, err)
	}

	var b strings.Builder
	if err := e.formatter.Format(&b, st, it); err != nil {
		return "", fmt.Errorf("format %s: %w", language, err)
	}
	return b.String(), nil
}

func (e *ChromaEngine) Supports(language string) bool {
	return lexers.Get(language) != nil
}

var commentTypes = []chroma.TokenType{
	chroma.Comment,
	chroma.CommentHashbang,
	chroma.CommentMultiline,
	chroma.CommentSingle,
	chroma.CommentSpecial,
}

// withCommentColor derives a style whose comment tokens use colour. Only
// comment types that share the plain comment colour change, so preprocessor
// lines and other tokens that happen to use the same hex keep theirs.
func (e *ChromaEngine) withCommentColor(st *chroma.Style, colour string) (*chroma.Style, error) {
	key := st.Name + "\x00" + colour
	if cached, ok := e.recolored.Load(key); ok {
		return cached.(*chroma.Style), nil
	}

	c := chroma.ParseColour(colour)
	if !c.IsSet() {
		return nil, fmt.Errorf("invalid colour %q", colour)
	}
	base := st.Get(chroma.Comment).Colour
	b := st.Builder()
	for _, tt := range commentTypes {
		entry := st.Get(tt)
		if tt != chroma.Comment && entry.Colour != base {
			continue
		}
		entry.Colour = c
		b.AddEntry(tt, entry)
	}
	derived, err := b.Build()
	if err != nil {
		return nil, err
	}
	actual, _ := e.recolored.LoadOrStore(key, derived)
	return actual.(*chroma.Style), nil
}
