package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/ctxport/internal/configloader"
	"github.com/yaklabco/ctxport/internal/logging"
	"github.com/yaklabco/ctxport/internal/ui/pretty"
	"github.com/yaklabco/ctxport/pkg/classify"
	"github.com/yaklabco/ctxport/pkg/clipboard"
	"github.com/yaklabco/ctxport/pkg/config"
	"github.com/yaklabco/ctxport/pkg/formatter"
	"github.com/yaklabco/ctxport/pkg/fsutil"
	"github.com/yaklabco/ctxport/pkg/pattern"
	"github.com/yaklabco/ctxport/pkg/runner"
)

const clipboardRuleWidth = 40

// exportFlags holds the flags of the root command.
type exportFlags struct {
	output           string
	stdout           bool
	format           string
	ignore           []string
	include          []string
	gitignore        bool
	maxSize          int64
	detectLanguage   bool
	clipboardTimeout time.Duration

	initConfig       bool
	initGlobalConfig bool
	force            bool
}

func addExportFlags(cmd *cobra.Command, flags *exportFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the export to this file instead of the clipboard")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print the export instead of copying it to the clipboard")
	cmd.Flags().StringVar(&flags.format, "format", string(formatter.FormatMarkdown),
		"output format: "+formatList())
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "additional ignore patterns (repeatable)")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only export files matching these globs (repeatable)")
	cmd.Flags().BoolVar(&flags.gitignore, "gitignore", false, "also skip files matched by the directory's .gitignore")
	cmd.Flags().Int64Var(&flags.maxSize, "max-size", 0, "skip files larger than this many bytes (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"guess the language of files the configuration does not map")
	cmd.Flags().DurationVar(&flags.clipboardTimeout, "clipboard-timeout", clipboard.DefaultTimeout,
		"time limit for each clipboard helper")

	cmd.Flags().BoolVar(&flags.initConfig, "init-config", false, "create an example .ctxport.json in the directory")
	cmd.Flags().BoolVar(&flags.initGlobalConfig, "init-global-config", false, "create an example global ctxport.json")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration files on init")

	cmd.MarkFlagsMutuallyExclusive("output", "stdout")
}

func formatList() string {
	names := make([]string, 0, len(formatter.Formats()))
	for _, f := range formatter.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func (a *app) runRoot(cmd *cobra.Command, args []string, flags *exportFlags) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	if flags.initConfig || flags.initGlobalConfig {
		return a.runInit(cmd, dir, flags)
	}
	return a.runExport(cmd, dir, flags)
}

func (a *app) runExport(cmd *cobra.Command, dir string, flags *exportFlags) error {
	ctx := cmd.Context()
	logger := a.logger(cmd)

	root, err := exportRoot(dir)
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(flags.format)
	if err != nil {
		return errors.Join(ErrInvalidUsage, err)
	}
	if flags.maxSize < 0 {
		return fmt.Errorf("%w: --max-size must not be negative", ErrInvalidUsage)
	}

	cfg, err := effectiveConfig(ctx, root, flags.ignore, logger)
	if err != nil {
		return err
	}

	classifyOpts, err := classifierOptions(root, flags, logger)
	if err != nil {
		return err
	}

	classifier, err := classify.New(root, cfg, classifyOpts)
	if err != nil {
		return fmt.Errorf("create classifier: %w", err)
	}

	fmtr, err := formatter.New(format)
	if err != nil {
		return errors.Join(ErrInvalidUsage, err)
	}

	result, err := runner.New(fmtr).Run(ctx, runner.Options{
		Classifier:     classifier,
		DetectLanguage: flags.detectLanguage,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("export %s: %w", root, err)
	}

	if a.flags.verbose {
		a.printReport(cmd.ErrOrStderr(), result)
	}

	return a.deliver(cmd, result, flags, logger)
}

// exportRoot validates dir and returns its absolute form.
func exportRoot(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidDirectory, dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidDirectory, dir, err)
	}
	return abs, nil
}

// effectiveConfig resolves the layered configuration for root, then applies the
// environment overlay and CLI ignore patterns on top.
func effectiveConfig(ctx context.Context, root string, ignore []string, logger *log.Logger) (*config.Config, error) {
	resolver := configloader.NewResolver(configloader.ResolverOptions{Logger: logger})

	res, err := resolver.Resolution(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("resolve configuration: %w", err)
	}

	cfg, fromEnv := configloader.ApplyEnv(res.Config, os.LookupEnv)
	if fromEnv {
		logger.Debug("applied environment overrides", logging.FieldSource, configloader.SourceEnv)
	}

	if len(ignore) > 0 {
		cfg = cfg.Merge(&config.Config{IgnorePatterns: ignore})
		logger.Debug("applied command-line ignore patterns", logging.FieldPattern, strings.Join(ignore, ","))
	}

	return cfg, nil
}

func classifierOptions(root string, flags *exportFlags, logger *log.Logger) (classify.Options, error) {
	opts := classify.Options{MaxFileSize: flags.maxSize, Logger: logger}

	if flags.gitignore {
		gi, err := pattern.LoadGitIgnore(root)
		if err != nil {
			return opts, fmt.Errorf("load .gitignore: %w", err)
		}
		if gi == nil {
			logger.Warn("--gitignore given but no .gitignore found", logging.FieldDir, root)
		} else {
			logger.Debug("loaded .gitignore", logging.FieldPath, gi.Path())
		}
		opts.GitIgnore = gi
	}

	if len(flags.include) > 0 {
		inc, err := pattern.CompileInclude(flags.include)
		if err != nil {
			return opts, errors.Join(ErrInvalidUsage, err)
		}
		opts.Include = inc
		logger.Debug("include filter", logging.FieldPattern, strings.Join(inc.Patterns(), ","))
	}

	return opts, nil
}

// deliver writes the document to the requested sink and prints the outcome.
func (a *app) deliver(cmd *cobra.Command, result *runner.Result, flags *exportFlags, logger *log.Logger) error {
	stdout := cmd.OutOrStdout()
	count := result.Stats.FilesExported

	switch {
	case flags.stdout:
		if _, err := io.WriteString(stdout, result.Document); err != nil {
			return fmt.Errorf("%w: write stdout: %w", ErrOutputFailed, err)
		}
		return nil

	case flags.output != "":
		abs, err := filepath.Abs(flags.output)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOutputFailed, err)
		}
		if err := fsutil.WriteAtomic(cmd.Context(), abs, []byte(result.Document), fsutil.DefaultFileMode); err != nil {
			return fmt.Errorf("%w: %w", ErrOutputFailed, err)
		}
		logger.Debug("wrote export", logging.FieldOutput, abs, logging.FieldBytes, len(result.Document))
		_, _ = fmt.Fprintf(stdout, "Successfully exported %d files to: %s\n", count, abs)
		return nil

	default:
		cb := a.clipboardFor(flags.clipboardTimeout, logger)
		if err := cb.Copy(cmd.Context(), result.Document); err != nil {
			// The export is still useful; hand it over on stdout.
			stderr := cmd.ErrOrStderr()
			_, _ = fmt.Fprintln(stderr, a.styles(stderr).Error.Render(
				"Error: Could not copy to clipboard. Printing to stdout instead:"))
			_, _ = fmt.Fprintln(stderr, strings.Repeat("-", clipboardRuleWidth))
			_, _ = io.WriteString(stdout, result.Document)
			return fmt.Errorf("%w: copy to clipboard: %w", ErrOutputFailed, err)
		}
		_, _ = fmt.Fprintf(stdout, "Successfully copied %d files to clipboard\n", count)
		return nil
	}
}

func (a *app) printReport(w io.Writer, result *runner.Result) {
	styles := a.styles(w)
	if a.flags.debug {
		_, _ = io.WriteString(w, pretty.NewTableFormatter(styles, 0).FormatSkipped(result))
		_, _ = io.WriteString(w, styles.FormatSummary(result.Stats))
		return
	}
	_, _ = io.WriteString(w, styles.FormatExportSummary(result.Stats))
}
