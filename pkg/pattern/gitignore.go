package pattern

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// GitIgnoreFile is the file name read by LoadGitIgnore.
const GitIgnoreFile = ".gitignore"

// GitIgnore wraps the rules of a single .gitignore file at the export root.
type GitIgnore struct {
	path  string
	rules *ignore.GitIgnore
}

// LoadGitIgnore compiles root/.gitignore. A missing file yields (nil, nil).
func LoadGitIgnore(root string) (*GitIgnore, error) {
	p := filepath.Join(root, GitIgnoreFile)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}

	rules, err := ignore.CompileIgnoreFile(p)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", p, err)
	}
	return &GitIgnore{path: p, rules: rules}, nil
}

// NewGitIgnore compiles gitignore rules from lines.
func NewGitIgnore(lines ...string) *GitIgnore {
	return &GitIgnore{rules: ignore.CompileIgnoreLines(lines...)}
}

// Path returns the file the rules came from, or "" for in-memory rules.
func (g *GitIgnore) Path() string {
	if g == nil {
		return ""
	}
	return g.path
}

// Ignores reports whether relPath is ignored. A nil GitIgnore ignores nothing.
func (g *GitIgnore) Ignores(relPath string) bool {
	if g == nil || g.rules == nil {
		return false
	}
	return g.rules.MatchesPath(relPath)
}
