package cli

import (
	"micrometa/internal/output"
	"micrometa/internal/startup"

	"github.com/spf13/cobra"
)

func newExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Run the full pipeline and print the encoded table",
		Long: `Discover files, decode their metadata, drop the configured columns and
one-hot encode the categorical fields. The table is printed to stdout,
aligned on a terminal and as CSV otherwise.

Examples:
  micrometa extract --root /data/scans
  micrometa extract --root /data/scans --format csv > features.csv
  micrometa extract --load-images --workers 8 --metrics-file run.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.finish()

			out, err := s.built.Run(cmd.Context())
			if err != nil {
				return err
			}
			if err := output.Render(cmd.OutOrStdout(), out, s.cfg.Output.Format); err != nil {
				return err
			}
			startup.LogRunFinished(s.summary(out))
			return nil
		},
	}
}
