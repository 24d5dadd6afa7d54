package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/ctxport/pkg/classify"
)

// Options configures a single export run.
type Options struct {
	// Classifier decides which files are exported. Its root is the export root.
	Classifier *classify.Classifier

	// DetectLanguage fills in missing language tags from file content.
	DetectLanguage bool

	// Logger receives progress and warnings. Defaults to logging.Default().
	Logger *log.Logger
}
