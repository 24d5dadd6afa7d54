// Package runner drives an export: it walks the root, asks the classifier about
// every file, and feeds accepted files to a formatter.
package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/ctxport/internal/logging"
	"github.com/yaklabco/ctxport/pkg/classify"
	"github.com/yaklabco/ctxport/pkg/formatter"
	"github.com/yaklabco/ctxport/pkg/fsutil"
	"github.com/yaklabco/ctxport/pkg/langdetect"
	"github.com/yaklabco/ctxport/pkg/pattern"
)

// ErrNoClassifier is returned when Options.Classifier is nil.
var ErrNoClassifier = errors.New("runner: classifier is required")

// Runner renders exports with a Formatter.
type Runner struct {
	Formatter formatter.Formatter
}

// New creates a Runner that renders with f.
func New(f formatter.Formatter) *Runner {
	return &Runner{Formatter: f}
}

// Run exports every accepted file below the classifier's root.
// Files are processed one at a time in enumeration order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Classifier == nil {
		return nil, ErrNoClassifier
	}

	logger := logging.OrDefault(opts.Logger)
	root := opts.Classifier.Root()
	cfg := opts.Classifier.Config()

	result := &Result{Project: filepath.Base(root)}
	r.Formatter.BeginDocument(result.Project)

	candidates := Enumerate(root, EnumerateOptions{
		Logger: logger,
		SkipDir: func(relDir string) bool {
			p, prune := pattern.PrunesDir(cfg.IgnorePatterns, relDir)
			if prune {
				logger.Debug("prune directory", logging.FieldPath, relDir, logging.FieldPattern, p)
				result.addSkipped(Skipped{RelPath: relDir, Reason: classify.ReasonIgnored, Pattern: p, Dir: true})
			}
			return prune
		},
		OnError: func(path string, err error) {
			result.Errors = append(result.Errors, err)
			if path == root {
				r.Formatter.AddError(fmt.Sprintf("Error during export: %v", err))
			}
		},
	})

	for cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("export cancelled: %w", err)
		}
		result.Stats.FilesSeen++

		decision := opts.Classifier.Classify(cand.Path)
		if !decision.Include {
			result.addSkipped(Skipped{RelPath: decision.RelPath, Reason: decision.Reason, Pattern: decision.Pattern})
			continue
		}

		logger.Info("Processing: "+decision.RelPath, logging.FieldLanguage, decision.Language)
		result.addExported(r.export(ctx, logger, cand, decision, opts.DetectLanguage))
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export cancelled: %w", err)
	}

	result.Document = r.Formatter.EndDocument()
	logger.Debug("export finished",
		logging.FieldFilesSeen, result.Stats.FilesSeen,
		logging.FieldFilesExported, result.Stats.FilesExported,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldBytes, result.Stats.BytesExported,
	)
	return result, nil
}

func (r *Runner) export(
	ctx context.Context,
	logger *log.Logger,
	cand Candidate,
	d classify.Decision,
	detect bool,
) ExportedFile {
	file := ExportedFile{RelPath: d.RelPath, Language: d.Language}

	content, enc, err := fsutil.ReadText(ctx, cand.Path)
	if err != nil {
		logger.Error("cannot read file", logging.FieldPath, d.RelPath, logging.FieldError, err)
		content = fmt.Sprintf("# Error reading file: %v", err)
		file.Err = err
	}
	file.Encoding = enc
	file.Bytes = len(content)

	if detect && file.Language == "" && file.Err == nil {
		file.Language = langdetect.Detect(cand.Path, []byte(content))
	}

	r.Formatter.AddFile(d.RelPath, content, file.Language)
	return file
}
