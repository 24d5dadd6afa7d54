// Package pretty provides Lipgloss-based styled output for the CLI.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles contains the styled renderers used for CLI output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath lipgloss.Style
	Language lipgloss.Style
	Reason   lipgloss.Style
	Pattern  lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI palette indexes.
const (
	red    = "9"
	green  = "10"
	yellow = "11"
	blue   = "12"
	cyan   = "14"
	grey   = "8"
	silver = "7"
)

// NewStyles returns the CLI styles. With color disabled every style renders
// its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	tone := func(color string, bold bool) lipgloss.Style {
		style := lipgloss.NewStyle()
		if !colorEnabled {
			return style
		}
		if color != "" {
			style = style.Foreground(lipgloss.Color(color))
		}
		return style.Bold(bold)
	}

	return &Styles{
		Error:   tone(red, true),
		Warning: tone(yellow, true),
		Info:    tone(blue, true),

		FilePath: tone("", true),
		Language: tone(cyan, false),
		Reason:   tone(yellow, false),
		Pattern:  tone(grey, false),

		SummaryTitle: tone("", true),
		SummaryValue: tone("", false),
		Success:      tone(green, true),
		Failure:      tone(red, true),

		TableHeader:    tone(silver, true),
		TableSeparator: tone(grey, false),

		Dim:  tone(grey, false),
		Bold: tone("", true),
	}
}

// IsColorEnabled reports whether output to writer should be styled.
// In auto mode color needs a terminal and an unset NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		f, ok := writer.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}

// ValidColorMode reports whether mode is one of the accepted color modes.
func ValidColorMode(mode string) bool {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}
