// Package cli implements the micrometa command line.
package cli

import (
	"micrometa/internal/startup"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "micrometa",
		Short: "Build one-hot encoded datasets from microscopy filenames",
		Long: `micrometa walks a directory of microscopy images, decodes slide, Z-stack,
channel, species, labeling and objective from each filename, and one-hot
encodes the result into a fixed-width feature table.

Filenames follow the acquisition convention

  s03z05ch01_Msmeg_DMN_60X.tif

and any field that cannot be decoded is recorded as "unknown".`,
		Version:       startup.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addCommonFlags(cmd)

	cmd.AddCommand(newExtractCommand())
	cmd.AddCommand(newInspectCommand())
	cmd.AddCommand(newVocabCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}
