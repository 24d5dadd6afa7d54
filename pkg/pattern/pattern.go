// Package pattern implements ignore-pattern matching against paths relative to an export root.
//
// Two pattern forms exist. A pattern ending in "/" names a directory: the text before
// the slash is compared literally against each ancestor directory of the path (every
// segment but the last), so "build/" never matches a file called "build". Any other
// pattern is a shell glob, tried against the whole relative path and then against each
// segment on its own. In globs "*" also matches "/", and backslash is an ordinary character.
// A "[" without a closing "]" is a literal character.
package pattern

import (
	"strings"

	"github.com/danwakefield/fnmatch"
)

// Separator is the path separator used in relative paths handed to this package.
const Separator = "/"

// Segments splits a slash-separated relative path into its components.
// Empty components and "." are dropped.
func Segments(relPath string) []string {
	parts := strings.Split(relPath, Separator)
	out := parts[:0]
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IsDirPattern reports whether p uses the trailing-slash directory form.
func IsDirPattern(p string) bool {
	return strings.HasSuffix(p, Separator)
}

// Match reports whether pattern excludes relPath, whose components are segments.
func Match(pattern, relPath string, segments []string) bool {
	if pattern == "" {
		return false
	}

	if IsDirPattern(pattern) {
		name := strings.TrimSuffix(pattern, Separator)
		if len(segments) == 0 {
			return false
		}
		for _, seg := range segments[:len(segments)-1] {
			if seg == name {
				return true
			}
		}
		return false
	}

	if shellMatch(pattern, relPath) {
		return true
	}
	for _, seg := range segments {
		if shellMatch(pattern, seg) {
			return true
		}
	}
	return false
}

// MatchAny returns the first pattern that excludes relPath.
func MatchAny(patterns []string, relPath string) (string, bool) {
	if len(patterns) == 0 {
		return "", false
	}
	segments := Segments(relPath)
	for _, p := range patterns {
		if Match(p, relPath, segments) {
			return p, true
		}
	}
	return "", false
}

// PrunesDir reports whether every file below relDir is excluded by patterns.
// Only segment-level matches are considered, so a pruned directory never hides a
// file that MatchAny would have accepted.
func PrunesDir(patterns []string, relDir string) (string, bool) {
	segments := Segments(relDir)
	if len(segments) == 0 {
		return "", false
	}
	for _, p := range patterns {
		if IsDirPattern(p) {
			name := strings.TrimSuffix(p, Separator)
			for _, seg := range segments {
				if seg == name {
					return p, true
				}
			}
			continue
		}
		for _, seg := range segments {
			if shellMatch(p, seg) {
				return p, true
			}
		}
	}
	return "", false
}

func shellMatch(pattern, name string) bool {
	return fnmatch.Match(literalBrackets(pattern), name, fnmatch.FNM_NOESCAPE)
}

// literalBrackets rewrites every "[" that opens no bracket expression as "[[]",
// so it matches itself instead of failing the whole pattern.
func literalBrackets(pattern string) string {
	if !strings.Contains(pattern, "[") {
		return pattern
	}

	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '[' {
			b.WriteByte(pattern[i])
			continue
		}
		end := closingBracket(pattern, i)
		if end < 0 {
			b.WriteString("[[]")
			continue
		}
		b.WriteString(pattern[i : end+1])
		i = end
	}
	return b.String()
}

// closingBracket returns the index of the "]" closing the bracket expression
// opened at pattern[open], or -1. A "]" right after "[" or "[!" is a member.
func closingBracket(pattern string, open int) int {
	j := open + 1
	if j < len(pattern) && pattern[j] == '!' {
		j++
	}
	if j < len(pattern) && pattern[j] == ']' {
		j++
	}
	if k := strings.IndexByte(pattern[j:], ']'); k >= 0 {
		return j + k
	}
	return -1
}
