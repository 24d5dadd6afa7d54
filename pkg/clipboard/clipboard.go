// Package clipboard copies text to the system clipboard through the platform's helper programs.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/yaklabco/ctxport/internal/logging"
)

// DefaultTimeout bounds each helper invocation.
const DefaultTimeout = 10 * time.Second

// waitDelay is how long to wait for pipes to drain after a helper is killed.
const waitDelay = time.Second

var (
	// ErrUnsupported is returned when no helper is known for the platform.
	ErrUnsupported = errors.New("clipboard not supported on this platform")

	// ErrNoClipboard is returned when every helper failed or was missing.
	ErrNoClipboard = errors.New("no working clipboard tool found")
)

// Command is one clipboard helper invocation. Text is written to its stdin.
type Command struct {
	Name string
	Args []string

	// Env entries are added to the inherited environment.
	Env []string

	// Encoding transcodes the UTF-8 text before it is written. Nil writes UTF-8.
	Encoding encoding.Encoding
}

// String returns the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// DefaultCommands returns the helpers tried on goos, in order.
func DefaultCommands(goos string) []Command {
	switch goos {
	case "darwin":
		return []Command{{Name: "pbcopy", Env: []string{"LANG=en_US.UTF-8"}}}
	case "windows":
		return []Command{{
			Name:     "clip",
			Encoding: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
		}}
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return []Command{
			{Name: "xclip", Args: []string{"-selection", "clipboard"}},
			{Name: "xsel", Args: []string{"--clipboard", "--input"}},
			{Name: "wl-copy"},
		}
	default:
		return nil
	}
}

// Copier writes text to the first helper that succeeds.
type Copier struct {
	// Commands are tried in order.
	Commands []Command

	// Timeout bounds each attempt. Zero uses DefaultTimeout.
	Timeout time.Duration

	// Logger receives one debug line per attempt.
	Logger *log.Logger
}

// New returns a Copier with the helpers for the current platform.
func New(timeout time.Duration, logger *log.Logger) *Copier {
	return &Copier{
		Commands: DefaultCommands(runtime.GOOS),
		Timeout:  timeout,
		Logger:   logger,
	}
}

// Copy places text on the clipboard.
func (c *Copier) Copy(ctx context.Context, text string) error {
	if len(c.Commands) == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
	}

	logger := logging.OrDefault(c.Logger)
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var errs []error
	for _, cmd := range c.Commands {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}

		err := run(ctx, cmd, text, timeout)
		if err == nil {
			logger.Debug("copied to clipboard", logging.FieldCommand, cmd.String())
			return nil
		}
		logger.Debug("clipboard helper failed",
			logging.FieldCommand, cmd.String(), logging.FieldTimeout, timeout, logging.FieldError, err)
		errs = append(errs, fmt.Errorf("%s: %w", cmd.Name, err))
	}

	return fmt.Errorf("%w: %w", ErrNoClipboard, errors.Join(errs...))
}

func run(ctx context.Context, cmd Command, text string, timeout time.Duration) error {
	path, err := exec.LookPath(cmd.Name)
	if err != nil {
		return err
	}

	input := []byte(text)
	if cmd.Encoding != nil {
		input, err = cmd.Encoding.NewEncoder().Bytes(input)
		if err != nil {
			return fmt.Errorf("encode input: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	proc := exec.CommandContext(ctx, path, cmd.Args...)
	proc.Stdin = bytes.NewReader(input)
	proc.WaitDelay = waitDelay
	if len(cmd.Env) > 0 {
		proc.Env = append(os.Environ(), cmd.Env...)
	}

	var stderr bytes.Buffer
	proc.Stderr = &stderr

	if err := proc.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("timed out after %s: %w", timeout, ctxErr)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
