package highlight

import (
	"html"
	"regexp"
)

// The page supplies its own code background in both themes.
var backgroundRe = regexp.MustCompile(`background-color:[^;"]+;?`)

func stripBackground(s string) string {
	return backgroundRe.ReplaceAllString(s, "")
}

// fallbackHTML escapes code into a bare pre block.
func fallbackHTML(code string) string {
	return `<pre class="chroma"><code>` + html.EscapeString(code) + `</code></pre>`
}
