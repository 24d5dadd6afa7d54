// Package cli provides the Cobra command structure for ctxport.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/ctxport/internal/logging"
	"github.com/yaklabco/ctxport/internal/ui/pretty"
	"github.com/yaklabco/ctxport/pkg/clipboard"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Clipboard receives the rendered document when no output file is given.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// Option customizes the root command.
type Option func(*app)

// WithClipboard replaces the platform clipboard.
func WithClipboard(c Clipboard) Option {
	return func(a *app) { a.clipboard = c }
}

// WithPrompt sets where confirmation answers are read from and whether to ask at all.
func WithPrompt(r io.Reader, interactive bool) Option {
	return func(a *app) {
		a.stdin = r
		a.interactive = func() bool { return interactive }
	}
}

// configFooter lists the configuration layers, lowest precedence first.
const configFooter = `Configuration files (later entries win):
  built-in defaults
  $XDG_CONFIG_HOME/ctxport/ctxport.json, ~/.config/ctxport/ctxport.json or ~/.ctxport.json
  .ctxport.json in every directory from / down to the target
  context.ignore in the target directory (legacy)
  CTXPORT_IGNORE, CTXPORT_TEXT_EXTENSIONS, CTXPORT_DEFAULT_LANGUAGE
  --ignore`

// globalFlags apply to every command.
type globalFlags struct {
	verbose bool
	debug   bool
	color   string
}

// app carries state shared by the commands of one invocation.
type app struct {
	info  BuildInfo
	flags globalFlags

	clipboard   Clipboard
	stdin       io.Reader
	interactive func() bool
}

// NewRootCommand creates the root ctxport command with all subcommands.
func NewRootCommand(info BuildInfo, opts ...Option) *cobra.Command {
	a := &app{
		info:        info,
		stdin:       os.Stdin,
		interactive: isInteractive,
	}
	for _, opt := range opts {
		opt(a)
	}

	export := &exportFlags{}

	rootCmd := &cobra.Command{
		Use:   "ctxport [directory]",
		Short: "Export a codebase as one markdown document for LLM context",
		Long: `ctxport walks a directory, keeps the text files your configuration allows,
and renders them into a single markdown document with one fenced code block
per file, tagged with its language.

Filtering is layered: built-in defaults, then the global ctxport.json, then
every .ctxport.json from the filesystem root down to the directory, then a
legacy context.ignore in the directory itself.

By default the document goes to the clipboard. Use --output to write a file
or --stdout to print it.`,
		Example: `  ctxport                         Export the current directory to the clipboard
  ctxport ./service -o ctx.md     Write the export to ctx.md
  ctxport --stdout --format json  Print a JSON document
  ctxport --init-config           Create an example .ctxport.json here`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationFooter: configFooter},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRoot(cmd, args, export)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "show per-file progress and a summary")
	rootCmd.PersistentFlags().BoolVar(&a.flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.flags.color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	addExportFlags(rootCmd, export)

	rootCmd.AddCommand(a.newConfigCommand())
	rootCmd.AddCommand(a.newVersionCommand())

	helpFormatter := NewHelpFormatter(a.flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// setup configures logging from the global flags and stores the logger in the context.
func (a *app) setup(cmd *cobra.Command) error {
	if !pretty.ValidColorMode(a.flags.color) {
		return fmt.Errorf("%w: --color must be auto, always or never, got %q", ErrInvalidUsage, a.flags.color)
	}

	level := logging.DefaultLevel
	if a.flags.verbose {
		level = "info"
	}
	if a.flags.debug {
		level = "debug"
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))
	return nil
}

func (a *app) logger(cmd *cobra.Command) *log.Logger {
	return logging.FromContext(cmd.Context())
}

func (a *app) styles(w io.Writer) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(a.flags.color, w))
}

func (a *app) clipboardFor(timeout time.Duration, logger *log.Logger) Clipboard {
	if a.clipboard != nil {
		return a.clipboard
	}
	return clipboard.New(timeout, logger)
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
