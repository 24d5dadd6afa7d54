package config

import (
	"maps"
	"slices"
)

// Merge returns a new Config with other layered over c.
//
// Map entries from other win on key collision, text extensions are unioned,
// ignore patterns are concatenated and de-duplicated keeping the first
// occurrence, and a non-empty DefaultLanguage in other replaces c's.
// Neither receiver nor argument is modified. Nil values act as empty configs.
func (c *Config) Merge(other *Config) *Config {
	base := c
	if base == nil {
		base = New()
	}
	if other == nil {
		other = New()
	}

	out := &Config{
		LanguageByExtension: mergeMaps(base.LanguageByExtension, other.LanguageByExtension),
		LanguageByFilename:  mergeMaps(base.LanguageByFilename, other.LanguageByFilename),
		TextExtensions:      make(StringSet, len(base.TextExtensions)+len(other.TextExtensions)),
		IgnorePatterns:      dedupe(base.IgnorePatterns, other.IgnorePatterns),
		DefaultLanguage:     base.DefaultLanguage,
	}
	maps.Copy(out.TextExtensions, base.TextExtensions)
	maps.Copy(out.TextExtensions, other.TextExtensions)

	if other.DefaultLanguage != "" {
		out.DefaultLanguage = other.DefaultLanguage
	}

	return out
}

// MergeAll folds configs left to right; later entries take precedence.
func MergeAll(configs ...*Config) *Config {
	result := New()
	for _, cfg := range configs {
		result = result.Merge(cfg)
	}
	return result
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	return &Config{
		LanguageByExtension: mergeMaps(c.LanguageByExtension, nil),
		LanguageByFilename:  mergeMaps(c.LanguageByFilename, nil),
		TextExtensions:      maps.Clone(c.TextExtensions),
		IgnorePatterns:      slices.Clone(c.IgnorePatterns),
		DefaultLanguage:     c.DefaultLanguage,
	}
}

func mergeMaps(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

func dedupe(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, p := range list {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
