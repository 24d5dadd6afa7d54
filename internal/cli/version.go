package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/ctxport/internal/logging"
)

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of ctxport.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logging.NewWithWriter(cmd.OutOrStdout(), "info").Info("ctxport",
				logging.FieldVersion, a.info.Version,
				logging.FieldCommit, a.info.Commit,
				logging.FieldBuilt, a.info.Date,
			)
		},
	}
}
