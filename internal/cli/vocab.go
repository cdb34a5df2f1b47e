package cli

import (
	"micrometa/internal/encoder"
	"micrometa/internal/output"

	"github.com/spf13/cobra"
)

func newVocabCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Fit the encoder and list the indicator columns per field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.finish()

			if _, err := s.built.Run(cmd.Context()); err != nil {
				return err
			}

			v := s.built.Encoder.Vocabulary()
			for _, col := range v.Columns() {
				var names []string
				for _, value := range v.Categories(col) {
					names = append(names, encoder.FeatureName(col, value))
				}
				if err := output.Lines(cmd.OutOrStdout(), col, names); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
