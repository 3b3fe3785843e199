package highlight

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// fenceRe matches a fenced block with an optional word-character language.
// Files saved with CRLF endings match too.
var fenceRe = regexp.MustCompile("```(\\w+)?\\r?\\n([\\s\\S]*?)```")

// plainLanguages are left untouched by HighlightCodeBlocks.
var plainLanguages = map[string]bool{"": true, "text": true, "plaintext": true}

// CodeBlock is one fenced block found in a document. Start and End are byte
// offsets of the whole fence, End exclusive.
type CodeBlock struct {
	Language string
	Code     string
	Start    int
	End      int
}

// ExtractCodeBlocks returns every fenced block of doc in document order.
// Code is the raw text between the fences, trimmed, with CRLF line endings
// folded to LF so both spellings of a file share cache entries.
func ExtractCodeBlocks(doc string) []CodeBlock {
	matches := fenceRe.FindAllStringSubmatchIndex(doc, -1)
	blocks := make([]CodeBlock, 0, len(matches))
	for _, m := range matches {
		b := CodeBlock{
			Code:  strings.TrimSpace(strings.ReplaceAll(doc[m[4]:m[5]], "\r\n", "\n")),
			Start: m[0],
			End:   m[1],
		}
		if m[2] >= 0 {
			b.Language = doc[m[2]:m[3]]
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// HighlightCodeBlocks replaces every fenced block that names a language with a
// CodeHighlighted element carrying both renders and the raw code. Blocks are
// replaced from the end of the document backwards so earlier offsets stay valid.
func (h *Highlighter) HighlightCodeBlocks(doc string) string {
	blocks := ExtractCodeBlocks(doc)
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		if plainLanguages[strings.ToLower(b.Language)] {
			continue
		}
		out := h.Highlight(b.Code, b.Language)
		doc = doc[:b.Start] + placeholder(b.Language, out.Light, out.Dark, b.Code) + doc[b.End:]
	}
	return doc
}

func placeholder(language, light, dark, code string) string {
	var b strings.Builder
	b.WriteString(`<CodeHighlighted language="`)
	b.WriteString(language)
	b.WriteString(`" lightHtml={`)
	b.WriteString(jsString(light))
	b.WriteString(`} darkHtml={`)
	b.WriteString(jsString(dark))
	b.WriteString(`} rawCode={`)
	b.WriteString(jsString(code))
	b.WriteString(`} />`)
	return b.String()
}

// jsString encodes s as a JSON string literal without HTML escaping, which is
// also a valid JavaScript expression inside a JSX attribute.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
