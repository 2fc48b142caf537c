package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the scratch directory and build record of an output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			workDir, _ := cmd.Flags().GetString("workdir")

			return c.app.Clean(cmd.Context(), output, workDir)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output whose intermediates should be removed")
	cmd.Flags().String("workdir", "", "Directory the build ran in (default: current directory)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
