package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldDir    = "dir"
	FieldOutput = "output"

	// Configuration fields.
	FieldSource  = "source"
	FieldSources = "sources"
	FieldPattern = "pattern"

	// Classification fields.
	FieldReason   = "reason"
	FieldLanguage = "language"

	// Statistics fields.
	FieldFilesSeen     = "files_seen"
	FieldFilesExported = "files_exported"
	FieldFilesSkipped  = "files_skipped"
	FieldBytes         = "bytes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Clipboard fields.
	FieldCommand = "command"
	FieldTimeout = "timeout"
)
