package cli

import (
	"micrometa/internal/output"

	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the decoded metadata table before encoding",
		Long: `Discover files and decode their metadata without dropping or encoding any
column. Useful for checking which files fall into the "unknown" category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.finish()

			table, err := s.built.Source.Load(cmd.Context())
			if err != nil {
				return err
			}
			return output.Render(cmd.OutOrStdout(), table, s.cfg.Output.Format)
		},
	}
}
