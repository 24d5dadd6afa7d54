package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/ctxport/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatExportSummary formats run statistics as a single line.
// Example: "12 files exported (48.1 KiB), 30 skipped, 2 directories pruned".
func (s *Styles) FormatExportSummary(stats runner.Stats) string {
	if stats.FilesExported == 0 {
		return s.Warning.Render("No files exported") +
			s.Dim.Render(fmt.Sprintf(" (%d %s seen)", stats.FilesSeen, plural(stats.FilesSeen))) + "\n"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s exported", stats.FilesExported, plural(stats.FilesExported))) +
			s.Dim.Render(" ("+FormatBytes(stats.BytesExported)+")"),
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.DirsPruned > 0 {
		word := "directories"
		if stats.DirsPruned == 1 {
			word = "directory"
		}
		parts = append(parts, fmt.Sprintf("%d %s pruned", stats.DirsPruned, word))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files seen:        " + s.SummaryValue.Render(strconv.Itoa(stats.FilesSeen)) + "\n")
	builder.WriteString("  Files exported:    " + s.Success.Render(strconv.Itoa(stats.FilesExported)) + "\n")
	builder.WriteString("  Files skipped:     " + s.SummaryValue.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	if stats.DirsPruned > 0 {
		builder.WriteString("  Dirs pruned:       " + s.SummaryValue.Render(strconv.Itoa(stats.DirsPruned)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Unreadable:        " + s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	builder.WriteString("  Content size:      " + s.SummaryValue.Render(FormatBytes(stats.BytesExported)) + "\n")

	return builder.String()
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
