package runner

import (
	"github.com/yaklabco/ctxport/pkg/classify"
	"github.com/yaklabco/ctxport/pkg/fsutil"
)

// ExportedFile describes one file that went into the document.
type ExportedFile struct {
	RelPath  string
	Language string
	Encoding fsutil.Encoding
	Bytes    int

	// Err is set when the content could not be read; the document carries a marker instead.
	Err error
}

// Skipped describes an entry left out of the document.
type Skipped struct {
	RelPath string
	Reason  classify.Reason
	Pattern string
	Dir     bool
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesSeen counts every non-directory entry enumerated.
	FilesSeen int

	// FilesExported counts files added to the document, including unreadable ones.
	FilesExported int

	// FilesSkipped counts files the classifier rejected.
	FilesSkipped int

	// FilesErrored counts exported files whose content could not be read.
	FilesErrored int

	// DirsPruned counts directories skipped by ignore patterns.
	DirsPruned int

	// BytesExported is the total size of exported content.
	BytesExported int
}

// Result is the outcome of a run.
type Result struct {
	// Project is the name used in the document header.
	Project string

	// Document is the rendered output.
	Document string

	// Files lists exported files in document order.
	Files []ExportedFile

	// Skipped lists rejected files and pruned directories in walk order.
	Skipped []Skipped

	// Stats contains aggregate counts.
	Stats Stats

	// Errors holds traversal errors. They do not fail the run.
	Errors []error
}

func (r *Result) addExported(f ExportedFile) {
	r.Files = append(r.Files, f)
	r.Stats.FilesExported++
	r.Stats.BytesExported += f.Bytes
	if f.Err != nil {
		r.Stats.FilesErrored++
	}
}

func (r *Result) addSkipped(s Skipped) {
	r.Skipped = append(r.Skipped, s)
	if s.Dir {
		r.Stats.DirsPruned++
		return
	}
	r.Stats.FilesSkipped++
}
