package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/ctxport/pkg/runner"
)

const (
	tablePadding     = 2
	minPathWidth     = 20
	minReasonWidth   = 12
	minPatternWidth  = 8
	heavySeparator   = "="
	defaultTermWidth = 100
	dirSuffix        = "/"
)

// TableRow is one skipped entry.
type TableRow struct {
	Path    string
	Reason  string
	Pattern string
}

// TableFormatter renders skipped entries as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a table formatter; termWidth <= 0 uses a default.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	path    int
	reason  int
	pattern int
}

// FormatSkipped renders the skipped entries of result, or "" when nothing was skipped.
func (t *TableFormatter) FormatSkipped(result *runner.Result) string {
	if result == nil || len(result.Skipped) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Skipped))
	for _, s := range result.Skipped {
		rows = append(rows, SkippedToTableRow(s))
	}
	widths := t.columnWidths(rows)

	var builder strings.Builder
	header := fmt.Sprintf(" %-*s  %-*s  %s",
		widths.path, "PATH",
		widths.reason, "REASON",
		"PATTERN",
	)
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(" ")
		builder.WriteString(t.styles.FilePath.Render(padRight(truncateFilePath(row.Path, widths.path), widths.path)))
		builder.WriteString("  ")
		if row.Pattern == "" {
			builder.WriteString(t.styles.Reason.Render(row.Reason))
		} else {
			builder.WriteString(t.styles.Reason.Render(padRight(row.Reason, widths.reason)))
			builder.WriteString("  ")
			builder.WriteString(t.styles.Pattern.Render(truncateString(row.Pattern, widths.pattern)))
		}
		builder.WriteString("\n")
	}

	builder.WriteString(t.separator(widths))
	builder.WriteString("\n")
	return builder.String()
}

func (t *TableFormatter) columnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{path: minPathWidth, reason: minReasonWidth, pattern: minPatternWidth}
	for _, row := range rows {
		widths.path = max(widths.path, len(row.Path))
		widths.reason = max(widths.reason, len(row.Reason))
		widths.pattern = max(widths.pattern, len(row.Pattern))
	}

	// Patterns shrink first, then paths.
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.pattern = max(minPatternWidth, widths.pattern-excess)
	}
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.path = max(minPathWidth, widths.path-excess)
	}
	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return 1 + widths.path + tablePadding + widths.reason + tablePadding + widths.pattern
}

func (t *TableFormatter) separator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.totalWidth(widths)))
}

// SkippedToTableRow converts a skipped entry to a table row. Directories get a trailing slash.
func SkippedToTableRow(s runner.Skipped) TableRow {
	path := s.RelPath
	if s.Dir {
		path += dirSuffix
	}
	return TableRow{Path: path, Reason: string(s.Reason), Pattern: s.Pattern}
}

func padRight(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath keeps the end of a path rather than the beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
