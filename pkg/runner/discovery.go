package runner

import (
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/ctxport/internal/logging"
)

// Candidate is a non-directory entry found below the export root.
type Candidate struct {
	// Path is the path as walked from the root.
	Path string

	// RelPath is the slash-separated path relative to the root.
	RelPath string
}

// EnumerateOptions tunes Enumerate.
type EnumerateOptions struct {
	// SkipDir is asked about every directory below the root; returning true prunes it.
	SkipDir func(relDir string) bool

	// OnError is called for entries that could not be read. The walk continues.
	OnError func(path string, err error)

	// Logger receives a warning per unreadable entry.
	Logger *log.Logger
}

// Enumerate lazily yields every non-directory entry below root in lexical order.
// Entries in a directory are visited sorted by name and each subtree is finished
// before its next sibling, so the order is stable across runs. Symlinked
// directories are yielded as entries, not descended into. Unreadable directories
// are reported through OnError and skipped. Each range over the result walks afresh.
func Enumerate(root string, opts EnumerateOptions) iter.Seq[Candidate] {
	logger := logging.OrDefault(opts.Logger)

	return func(yield func(Candidate) bool) {
		_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				logger.Warn("cannot read entry, skipping", logging.FieldPath, path, logging.FieldError, walkErr)
				if opts.OnError != nil {
					opts.OnError(path, walkErr)
				}
				if entry != nil && entry.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil //nolint:nilerr // Paths from WalkDir are always below root.
			}
			rel = filepath.ToSlash(rel)

			if entry.IsDir() {
				if path != root && opts.SkipDir != nil && opts.SkipDir(rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(Candidate{Path: path, RelPath: rel}) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
