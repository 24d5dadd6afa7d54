// Package formatter renders exported files into a single document.
package formatter

import (
	"fmt"
	"strings"
)

// Formatter accumulates one document. Calls arrive in the order
// BeginDocument, any mix of AddFile and AddError, then EndDocument.
type Formatter interface {
	// BeginDocument starts a new document, discarding any previous one.
	BeginDocument(projectName string)

	// AddFile appends one file. An empty language means no tag.
	AddFile(path, content, language string)

	// AddError appends a visible error section.
	AddError(message string)

	// EndDocument returns the rendered document.
	EndDocument() string
}

// Format names an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatJSON}
}

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "md", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected markdown or json)", s)
	}
}

// New returns a formatter for f.
func New(f Format) (Formatter, error) {
	switch f {
	case FormatMarkdown, "":
		return NewMarkdown(), nil
	case FormatJSON:
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}
