// Package langdetect guesses a language tag for files the configured maps do not cover.
// It is only consulted when `--detect-language` is set and no tag was found otherwise.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// sampleSize bounds how much content the heuristics and classifier look at.
const sampleSize = 16 * 1024

// Language tags produced by the content heuristics.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// classifierCandidates limits the Bayesian classifier to common languages.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// fenceNames overrides enry names whose lowercase form is not a common fence tag.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fenceNames = map[string]string{
	"Shell":            langBash,
	"C++":              "cpp",
	"C#":               "csharp",
	"Objective-C":      "objectivec",
	"Emacs Lisp":       "elisp",
	"Git Config":       "gitconfig",
	"Ignore List":      "gitignore",
	"Protocol Buffer":  "protobuf",
	"Jupyter Notebook": "json",
}

// Detect returns a fence tag for a file, or "" when nothing is confident enough.
// Name-based signals are tried before content: enry's filename table, the
// shebang line, the extension table, pattern heuristics, then the classifier.
func Detect(filename string, content []byte) string {
	base := filepath.Base(filename)

	if lang, safe := enry.GetLanguageByFilename(base); safe && lang != "" {
		return normalize(lang)
	}

	if len(content) > sampleSize {
		content = content[:sampleSize]
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return normalize(lang)
	}

	if lang, safe := enry.GetLanguageByExtension(base); safe && lang != "" {
		return normalize(lang)
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// rule tags content that matches.
type rule struct {
	lang  string
	match func(text, trimmed string) bool
}

// rules run in order of specificity; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var rules = []rule{
	{langGo, func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ")
	}},
	{langPython, looksLikePython},
	{langHTML, func(_, trimmed string) bool {
		return containsAny(strings.ToLower(trimmed), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{langJSON, func(_, trimmed string) bool {
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && strings.Contains(trimmed, `"`)
	}},
	{langDockerfile, func(text, trimmed string) bool {
		return strings.HasPrefix(trimmed, "FROM ") ||
			containsAll(text, "\nFROM ", "\nRUN ") ||
			containsAll(text, "WORKDIR ", "COPY ")
	}},
	{langSQL, func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, keyword) {
				return true
			}
		}
		return false
	}},
	{langRust, func(text, _ string) bool {
		return containsAny(text, "fn main()", "println!", "let mut ")
	}},
	{langJavaScript, func(text, _ string) bool {
		return containsAny(text, "=>", "const ", "console.log")
	}},
	{langYAML, func(text, _ string) bool {
		return yamlLines(text) >= 2
	}},
}

func detectByPattern(content []byte) string {
	text := string(content)
	trimmed := strings.TrimSpace(text)
	for _, r := range rules {
		if r.match(text, trimmed) {
			return r.lang
		}
	}
	return ""
}

func looksLikePython(text, trimmed string) bool {
	switch {
	case containsAll(text, "def ", "):"):
		return true
	case containsAny(text, "__name__", "__main__"):
		return true
	case strings.Contains(text, "import (") || !strings.Contains(text, "import "):
		// "import (" is Go.
		return false
	default:
		return strings.Contains(text, "from ") || strings.HasPrefix(trimmed, "import ")
	}
}

// yamlLines counts "key: value" lines and list items, ignoring comments and
// lines that look like code.
func yamlLines(text string) int {
	count := 0
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "- "):
			count++
		case strings.Contains(line, ": ") && !containsAny(line, "(", "{") && !strings.HasPrefix(line, `"`):
			count++
		}
	}
	return count
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if tag, ok := fenceNames[lang]; ok {
		return tag
	}
	return strings.ReplaceAll(strings.ToLower(lang), " ", "-")
}
