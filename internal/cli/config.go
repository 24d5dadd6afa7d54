package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ctxport/internal/configloader"
	"github.com/yaklabco/ctxport/internal/logging"
	"github.com/yaklabco/ctxport/pkg/fsutil"
)

func (a *app) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect, validate and migrate configuration",
		Long: `Inspect the configuration ctxport would use for a directory, validate
config files against the schema, or convert a legacy context.ignore file.`,
	}

	cmd.AddCommand(a.newConfigShowCommand())
	cmd.AddCommand(a.newConfigPathCommand())
	cmd.AddCommand(a.newConfigValidateCommand())
	cmd.AddCommand(a.newConfigMigrateCommand())

	return cmd
}

func dirArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}

func (a *app) newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [directory]",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := exportRoot(dirArg(args))
			if err != nil {
				return err
			}

			resolver := configloader.NewResolver(configloader.ResolverOptions{Logger: a.logger(cmd)})
			res, err := resolver.Resolution(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("resolve configuration: %w", err)
			}

			cfg, fromEnv := configloader.ApplyEnv(res.Config, os.LookupEnv)

			header := []string{"Effective ctxport configuration for " + root, "", "Sources, lowest precedence first:"}
			for _, src := range res.Sources {
				header = append(header, "  "+src.String())
			}
			if fromEnv {
				header = append(header, "  "+string(configloader.SourceEnv))
			}
			for _, w := range res.Warnings {
				header = append(header, "warning: "+w)
			}

			out, err := cfg.ToYAMLWithHeader(header...)
			if err != nil {
				return fmt.Errorf("serialize configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func (a *app) newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path [directory]",
		Short: "List configuration file locations",
		Long: `List where ctxport looks for the global configuration and which files
contributed to the configuration of a directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := exportRoot(dirArg(args))
			if err != nil {
				return err
			}

			resolver := configloader.NewResolver(configloader.ResolverOptions{Logger: a.logger(cmd)})
			res, err := resolver.Resolution(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("resolve configuration: %w", err)
			}

			w := cmd.OutOrStdout()
			styles := a.styles(w)

			home, _ := os.UserHomeDir()
			xdg := os.Getenv("XDG_CONFIG_HOME")
			found := configloader.FindGlobalConfig(xdg, home)

			_, _ = fmt.Fprintln(w, styles.SummaryTitle.Render("Global candidates:"))
			for _, candidate := range configloader.GlobalConfigCandidates(xdg, home) {
				mark := ""
				if candidate == found {
					mark = styles.Success.Render(" (found)")
				}
				_, _ = fmt.Fprintf(w, "  %s%s\n", candidate, mark)
			}

			_, _ = fmt.Fprintln(w, styles.SummaryTitle.Render("Loaded sources:"))
			for _, src := range res.Sources {
				_, _ = fmt.Fprintf(w, "  %-10s %s\n", src.Kind, src.Path)
			}
			return nil
		},
	}
}

func (a *app) newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check config files against the schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateFiles(cmd.OutOrStdout(), args)
		},
	}
}

func validateFiles(w io.Writer, paths []string) error {
	var errs []error
	for _, path := range paths {
		result, err := configloader.ValidateFile(path)
		if err != nil {
			errs = append(errs, err)
			_, _ = fmt.Fprintf(w, "%s: %v\n", path, err)
			continue
		}
		if result.Valid() {
			_, _ = fmt.Fprintf(w, "%s: ok\n", path)
			continue
		}
		for i := range result.Errors {
			errs = append(errs, &result.Errors[i])
			_, _ = fmt.Fprintln(w, result.Errors[i].Error())
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

func (a *app) newConfigMigrateCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate [directory]",
		Short: "Convert context.ignore into .ctxport.json",
		Long: `Fold the patterns of a legacy context.ignore file into the directory's
.ctxport.json. Existing settings are kept and the previous file is backed up
with a .bak suffix. The context.ignore file itself is left in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := a.logger(cmd)
			w := cmd.OutOrStdout()

			root, err := exportRoot(dirArg(args))
			if err != nil {
				return err
			}

			result, err := configloader.MigrateLegacyIgnore(root)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			for _, warning := range result.Warnings {
				logger.Warn(warning)
			}

			if dryRun {
				_, err := w.Write(result.Content)
				return err
			}

			if result.TargetExists {
				backup, err := fsutil.CreateBackup(cmd.Context(), result.TargetPath)
				if err != nil {
					return fmt.Errorf("back up %s: %w", result.TargetPath, err)
				}
				logger.Info("backed up existing configuration", logging.FieldPath, backup)
			}

			if err := fsutil.WriteAtomic(cmd.Context(), result.TargetPath, result.Content, 0); err != nil {
				return fmt.Errorf("write %s: %w", result.TargetPath, err)
			}
			if err := verifyMigrated(cmd, result.TargetPath); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(w, "Migrated %d patterns from %s to %s\n",
				len(result.Added), result.SourcePath, result.TargetPath)
			if len(result.Added) > 0 {
				_, _ = fmt.Fprintf(w, "You can now delete %s\n", result.SourcePath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the new .ctxport.json instead of writing it")

	return cmd
}

// verifyMigrated validates the written config and puts the backup back when it is invalid.
func verifyMigrated(cmd *cobra.Command, path string) error {
	check, err := configloader.ValidateFile(path)
	if err == nil && check.Valid() {
		return nil
	}

	restored, rerr := fsutil.RestoreBackup(cmd.Context(), path)
	if rerr != nil {
		return fmt.Errorf("restore %s: %w", path, rerr)
	}
	if !restored {
		if rerr := os.Remove(path); rerr != nil {
			return fmt.Errorf("remove %s: %w", path, rerr)
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return fmt.Errorf("%w: migrated %s failed validation: %w", ErrInvalidConfig, path, &check.Errors[0])
}
