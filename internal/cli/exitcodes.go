package cli

import "errors"

// Exit codes for ctxport.
const (
	// ExitSuccess indicates the export or subcommand completed.
	ExitSuccess = 0

	// ExitFailure covers invalid directories, failed exports and failed output.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64
)

var (
	// ErrInvalidDirectory is returned when the export target is missing or not a directory.
	ErrInvalidDirectory = errors.New("invalid directory")

	// ErrOutputFailed is returned when the document could not be delivered.
	ErrOutputFailed = errors.New("output failed")

	// ErrConfigExists is returned when an init target exists and overwriting was not confirmed.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrInvalidConfig is returned by `config validate` when any file has errors.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidUsage is returned for flag values the parser accepts but ctxport does not.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	default:
		return ExitFailure
	}
}
