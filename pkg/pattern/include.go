package pattern

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// IncludeSet is a compiled list of include globs. A path is kept when any glob matches
// it. Globs use "/" as separator, so "*" stays within a segment and "**" crosses them.
// Globs without a "/" are also tried against the base name.
type IncludeSet struct {
	globs []compiledGlob
}

type compiledGlob struct {
	source   string
	matcher  glob.Glob
	baseOnly bool
}

// CompileInclude compiles include patterns. An empty list yields a set that keeps everything.
func CompileInclude(patterns []string) (*IncludeSet, error) {
	set := &IncludeSet{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compile include pattern %q: %w", p, err)
		}
		set.globs = append(set.globs, compiledGlob{
			source:   p,
			matcher:  g,
			baseOnly: !strings.Contains(p, Separator),
		})
	}
	return set, nil
}

// Empty reports whether the set has no patterns.
func (s *IncludeSet) Empty() bool {
	return s == nil || len(s.globs) == 0
}

// Includes reports whether relPath is selected by the set.
func (s *IncludeSet) Includes(relPath string) bool {
	if s.Empty() {
		return true
	}
	base := path.Base(relPath)
	for _, g := range s.globs {
		if g.matcher.Match(relPath) {
			return true
		}
		if g.baseOnly && g.matcher.Match(base) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns in compile order.
func (s *IncludeSet) Patterns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.globs))
	for i, g := range s.globs {
		out[i] = g.source
	}
	return out
}
