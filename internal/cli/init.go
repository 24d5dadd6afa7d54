package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ctxport/internal/configloader"
	"github.com/yaklabco/ctxport/internal/logging"
	"github.com/yaklabco/ctxport/pkg/config"
	"github.com/yaklabco/ctxport/pkg/fsutil"
)

// runInit handles --init-config and --init-global-config. Both may be given at once.
func (a *app) runInit(cmd *cobra.Command, dir string, flags *exportFlags) error {
	var targets []string

	if flags.initConfig {
		if _, err := exportRoot(dir); err != nil {
			return err
		}
		targets = append(targets, filepath.Join(dir, configloader.ProjectConfigFile))
	}

	if flags.initGlobalConfig {
		home, _ := os.UserHomeDir()
		target, err := configloader.GlobalConfigTarget(os.Getenv("XDG_CONFIG_HOME"), home)
		if err != nil {
			return fmt.Errorf("locate global config: %w", err)
		}
		targets = append(targets, target)
	}

	for _, target := range targets {
		if err := a.writeExampleConfig(cmd, target, flags.force); err != nil {
			return err
		}
	}
	return nil
}

// writeExampleConfig writes the example configuration to path, asking first when
// path exists and force is not set. An overwritten file is backed up alongside.
func (a *app) writeExampleConfig(cmd *cobra.Command, path string, force bool) error {
	logger := a.logger(cmd)
	stdout := cmd.OutOrStdout()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(abs); err == nil {
		if !force {
			ok, err := a.confirm(stdout, fmt.Sprintf("%s already exists. Overwrite? [y/N] ", abs))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, abs)
			}
		}

		backup, err := fsutil.CreateBackup(cmd.Context(), abs)
		if err != nil {
			return fmt.Errorf("back up %s: %w", abs, err)
		}
		logger.Info("backed up existing configuration", logging.FieldPath, backup)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check %s: %w", abs, err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), abs, config.ExampleJSON(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write example config: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "Created example config: %s\n", abs)
	return nil
}

// confirm asks a yes/no question. Without an interactive terminal the answer is no.
func (a *app) confirm(w io.Writer, question string) (bool, error) {
	if !a.interactive() {
		return false, nil
	}

	if _, err := io.WriteString(w, question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
