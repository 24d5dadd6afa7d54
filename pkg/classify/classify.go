// Package classify decides which files go into an export and how each one is tagged.
package classify

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/ctxport/internal/logging"
	"github.com/yaklabco/ctxport/pkg/config"
	"github.com/yaklabco/ctxport/pkg/pattern"
)

// Reason explains why a file was left out. It is empty for included files.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonNotRegular  Reason = "not-regular"
	ReasonOutsideRoot Reason = "outside-root"
	ReasonProtected   Reason = "protected"
	ReasonIgnored     Reason = "ignored"
	ReasonGitIgnored  Reason = "gitignored"
	ReasonNotIncluded Reason = "not-included"
	ReasonTooLarge    Reason = "too-large"
	ReasonBinary      Reason = "binary"
)

// Decision is the outcome of classifying one file.
type Decision struct {
	// Include is true if the file belongs in the export.
	Include bool

	// RelPath is the slash-separated path relative to the export root.
	RelPath string

	// Language is the display tag for included files; it may be empty.
	Language string

	// Reason is set when Include is false.
	Reason Reason

	// Pattern is the ignore pattern that matched, for ReasonIgnored.
	Pattern string
}

// Options enables the optional filters. The zero value disables all of them.
type Options struct {
	// GitIgnore excludes files matched by the root .gitignore.
	GitIgnore *pattern.GitIgnore

	// Include, when non-empty, keeps only files it matches.
	Include *pattern.IncludeSet

	// MaxFileSize excludes files larger than this many bytes. Zero means unlimited.
	MaxFileSize int64

	// Logger receives one debug line per decision.
	Logger *log.Logger
}

// Classifier applies a fixed Config to files below one root.
// It holds no mutable state, so repeated calls give the same answer.
type Classifier struct {
	root   string
	cfg    *config.Config
	opts   Options
	logger *log.Logger
}

// New creates a classifier for files below root.
func New(root string, cfg *config.Config, opts Options) (*Classifier, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Classifier{
		root:   absRoot,
		cfg:    cfg,
		opts:   opts,
		logger: logging.OrDefault(opts.Logger),
	}, nil
}

// Root returns the absolute export root.
func (c *Classifier) Root() string {
	return c.root
}

// Config returns the configuration the classifier applies.
func (c *Classifier) Config() *config.Config {
	return c.cfg
}

// Classify decides whether path is exported. Relative paths are taken relative to the root.
func (c *Classifier) Classify(path string) Decision {
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.root, path)
	}

	d := c.classify(path)
	if d.Include {
		c.logger.Debug("include", logging.FieldPath, d.RelPath, logging.FieldLanguage, d.Language)
	} else {
		c.logger.Debug("skip", logging.FieldPath, d.RelPath, logging.FieldReason, d.Reason,
			logging.FieldPattern, d.Pattern)
	}
	return d
}

func (c *Classifier) classify(path string) Decision {
	rel, ok := c.relPath(path)
	if !ok {
		return Decision{RelPath: path, Reason: ReasonOutsideRoot}
	}
	d := Decision{RelPath: rel}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		d.Reason = ReasonNotRegular
		return d
	}

	name := filepath.Base(path)
	if config.IsProtectedName(name) {
		d.Reason = ReasonProtected
		return d
	}

	if p, hit := pattern.MatchAny(c.cfg.IgnorePatterns, rel); hit {
		d.Reason = ReasonIgnored
		d.Pattern = p
		return d
	}

	if c.opts.GitIgnore.Ignores(rel) {
		d.Reason = ReasonGitIgnored
		return d
	}

	if !c.opts.Include.Includes(rel) {
		d.Reason = ReasonNotIncluded
		return d
	}

	if c.opts.MaxFileSize > 0 && info.Size() > c.opts.MaxFileSize {
		d.Reason = ReasonTooLarge
		return d
	}

	if !isText(path, name, c.cfg) {
		d.Reason = ReasonBinary
		return d
	}

	d.Include = true
	d.Language = LanguageFor(name, c.cfg)
	return d
}

func (c *Classifier) relPath(path string) (string, bool) {
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// IsText reports whether the file at path should be treated as text under cfg.
func IsText(path string, cfg *config.Config) bool {
	return isText(path, filepath.Base(path), cfg)
}

func isText(path, name string, cfg *config.Config) bool {
	if _, ok := cfg.LanguageForFilename(name); ok {
		return true
	}
	if cfg.IsTextExtension(name) {
		return true
	}
	if ext := filepath.Ext(name); ext != "" && strings.HasPrefix(mime.TypeByExtension(ext), "text/") {
		return true
	}
	text, err := probeFile(path)
	return err == nil && text
}

// LanguageFor returns the language tag for a file name: the filename map, then the
// extension map, then cfg.DefaultLanguage, else "".
func LanguageFor(name string, cfg *config.Config) string {
	name = filepath.Base(name)
	if lang, ok := cfg.LanguageForFilename(name); ok {
		return lang
	}
	if lang, ok := cfg.LanguageForExtension(name); ok {
		return lang
	}
	return cfg.DefaultLanguage
}
