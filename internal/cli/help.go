package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/ctxport/internal/ui/pretty"
)

// annotationFooter holds extra help text rendered after the flags.
const annotationFooter = "ctxport.help.footer"

// minFlagGap is the run of spaces pflag puts between a flag and its description.
const minFlagGap = 2

// helpStyles maps help template elements onto the shared CLI styles.
type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(s *pretty.Styles) helpStyles {
	return helpStyles{
		command: s.Language.Bold(true),
		heading: s.Warning,
		name:    s.Success.UnsetBold(),
		flag:    s.Info.UnsetBold(),
		dim:     s.Dim,
	}
}

// HelpFormatter renders cobra help and usage with lipgloss styling.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode and writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	return &HelpFormatter{styles: newHelpStyles(styles)}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end}}

{{- with footer .}}

{{ . }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimTrailingWhitespaces . }}

{{end}}`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":                 h.styles.command.Render,
		"heading":                 h.styles.heading.Render,
		"name":                    h.styles.name.Render,
		"dim":                     h.styles.dim.Render,
		"flags":                   h.styleFlagUsages,
		"footer":                  h.footer,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// footer renders the annotationFooter of cmd with a styled heading line.
func (h *HelpFormatter) footer(cmd *cobra.Command) string {
	text := cmd.Annotations[annotationFooter]
	if text == "" {
		return ""
	}
	heading, body, _ := strings.Cut(text, "\n")
	return h.styles.heading.Render(heading) + "\n" + body
}

// styleFlagUsages colors flag names and dims value types in pflag's usage block.
func (h *HelpFormatter) styleFlagUsages(usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	flagPart, desc, ok := splitFlagLine(trimmed)
	if !ok {
		return line
	}

	tokens := strings.Fields(flagPart)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.dim.Render(token)
			continue
		}
		clean := strings.TrimSuffix(token, ",")
		tokens[i] = h.styles.flag.Render(clean) + token[len(clean):]
	}

	return indent + strings.Join(tokens, " ") + "   " + desc
}

// splitFlagLine splits "-f, --flag type   description" at the first gap of two or more spaces.
func splitFlagLine(line string) (string, string, bool) {
	idx := strings.Index(line, strings.Repeat(" ", minFlagGap))
	if idx < 0 {
		return "", "", false
	}
	desc := strings.TrimLeft(line[idx:], " ")
	if desc == "" {
		return "", "", false
	}
	return line[:idx], desc, true
}

// ApplyToCommand installs the styled templates on cmd; subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStdout(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
			return
		}
		if err := c.Usage(); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
