package cli

import (
	"micrometa/internal/startup"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			startup.PrintBanner(cmd.OutOrStdout())
		},
	}
}
