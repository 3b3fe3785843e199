package highlight

import "strings"

// languageAliases maps short fence names to canonical language ids.
var languageAliases = map[string]string{
	"js":     "javascript",
	"ts":     "typescript",
	"py":     "python",
	"sh":     "bash",
	"zsh":    "bash",
	"yml":    "yaml",
	"md":     "markdown",
	"docker": "dockerfile",
	"rs":     "rust",
	"rb":     "ruby",
	"kt":     "kotlin",
	"ex":     "elixir",
	"exs":    "elixir",
	"hs":     "haskell",
	"clj":    "clojure",
	"pl":     "perl",
}

// supportedLanguages is the closed set of languages that get highlighted.
// Anything else renders as plain text.
var supportedLanguages = map[string]struct{}{
	"python": {}, "javascript": {}, "typescript": {}, "jsx": {}, "tsx": {},
	"bash": {}, "shell": {}, "json": {}, "yaml": {}, "markdown": {},
	"css": {}, "html": {}, "sql": {}, "rust": {}, "go": {},
	"java": {}, "c": {}, "cpp": {}, "ruby": {}, "php": {},
	"swift": {}, "kotlin": {}, "scala": {}, "r": {}, "lua": {},
	"perl": {}, "haskell": {}, "elixir": {}, "clojure": {}, "dockerfile": {},
	"nginx": {}, "graphql": {}, "xml": {}, "toml": {}, "ini": {},
	"diff": {}, "git-commit": {}, "git-rebase": {}, "makefile": {}, "cmake": {},
}

// NormalizeLanguage lower-cases language and resolves aliases.
func NormalizeLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if canonical, ok := languageAliases[lang]; ok {
		return canonical
	}
	return lang
}

// IsSupported reports whether the canonical language id is highlighted.
func IsSupported(language string) bool {
	_, ok := supportedLanguages[language]
	return ok
}
