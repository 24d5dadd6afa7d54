// Package config defines the ctxport configuration model.
// A Config is a plain value; loading and discovery live in internal/configloader.
package config

import (
	"path/filepath"
	"slices"
	"strings"
)

// Config controls which files are exported and how they are tagged.
// A Config is treated as immutable once built; Merge and Clone return new values.
type Config struct {
	// LanguageByExtension maps a lowercase extension (with the leading dot) to a language tag.
	LanguageByExtension map[string]string `json:"language_map" yaml:"language_map"`

	// LanguageByFilename maps a lowercase file name to a language tag.
	// It takes precedence over LanguageByExtension.
	LanguageByFilename map[string]string `json:"filename_map" yaml:"filename_map"`

	// TextExtensions lists extensions that are always treated as text.
	TextExtensions StringSet `json:"text_extensions" yaml:"text_extensions"`

	// IgnorePatterns are matched against paths relative to the export root.
	IgnorePatterns []string `json:"ignore_patterns" yaml:"ignore_patterns"`

	// DefaultLanguage tags files no map knows about. Empty means no tag.
	DefaultLanguage string `json:"default_language,omitempty" yaml:"default_language,omitempty"`
}

// New returns an empty configuration with initialized collections.
func New() *Config {
	return &Config{
		LanguageByExtension: map[string]string{},
		LanguageByFilename:  map[string]string{},
		TextExtensions:      StringSet{},
	}
}

// LanguageForFilename returns the language for an exact (case-insensitive) file name.
func (c *Config) LanguageForFilename(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	lang, ok := c.LanguageByFilename[strings.ToLower(name)]
	return lang, ok
}

// LanguageForExtension returns the language registered for the extension of name.
func (c *Config) LanguageForExtension(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	ext := Ext(name)
	if ext == "" {
		return "", false
	}
	lang, ok := c.LanguageByExtension[ext]
	return lang, ok
}

// IsTextExtension reports whether the extension of name is in the text set.
func (c *Config) IsTextExtension(name string) bool {
	if c == nil {
		return false
	}
	ext := Ext(name)
	return ext != "" && c.TextExtensions.Has(ext)
}

// Ext returns the lowercase extension of name including the dot.
// A dotfile such as ".gitignore" has itself as its extension.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// StringSet is an unordered set of strings.
type StringSet map[string]struct{}

// NewStringSet builds a set from values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// MarshalYAML renders the set as a sorted sequence.
func (s StringSet) MarshalYAML() (any, error) {
	return s.Sorted(), nil
}
