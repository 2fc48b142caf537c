package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cclink/internal/adapters/detector"
	"go.trai.ch/cclink/internal/app"
	"go.trai.ch/cclink/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [sources...]",
		Short: "Compile each source, then link the objects into the output",
		Long: `Compile each source with the compile command, gather the objects in a
scratch directory named after the output, then invoke the link command once.

An existing output is left alone unless --force is given. Values missing on
the command line are taken from a cclink.yaml recipe, found with --recipe or
looked up from the work directory upwards.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			compile, _ := cmd.Flags().GetString("compile")
			link, _ := cmd.Flags().GetString("link")
			output, _ := cmd.Flags().GetString("output")
			keep, _ := cmd.Flags().GetBool("keep")
			force, _ := cmd.Flags().GetBool("force")
			verbose, _ := cmd.Flags().GetBool("verbose")
			workDir, _ := cmd.Flags().GetString("workdir")
			jobs, _ := cmd.Flags().GetInt("jobs")
			recipe, _ := cmd.Flags().GetString("recipe")
			colorFlag, _ := cmd.Flags().GetString("color")

			color, err := detector.ParseColorMode(colorFlag)
			if err != nil {
				return err
			}

			_, err = c.app.Build(cmd.Context(), app.BuildOptions{
				RecipePath: recipe,
				Color:      color,
				Request: domain.BuildRequest{
					SourceFiles:       args,
					CompileCommand:    compile,
					LinkCommand:       link,
					OutputPath:        output,
					KeepIntermediates: keep,
					ForceRebuild:      force,
					Verbose:           verbose,
					WorkDir:           workDir,
					Jobs:              jobs,
				},
			})
			return err
		},
	}

	cmd.Flags().String("compile", "", "Compile command, invoked once per source with its absolute path")
	cmd.Flags().String("link", "", "Link command, invoked with the output path followed by the objects")
	cmd.Flags().StringP("output", "o", "", "Output file the link command must produce")
	cmd.Flags().BoolP("keep", "k", false, "Keep the scratch directory with the object files")
	cmd.Flags().BoolP("force", "f", false, "Rebuild even if the output already exists")
	cmd.Flags().BoolP("verbose", "v", false, "Log each step of the build")
	cmd.Flags().String("workdir", "", "Directory the commands run in (default: current directory)")
	cmd.Flags().IntP("jobs", "j", 0, "Number of concurrent compile invocations")
	cmd.Flags().StringP("recipe", "r", "", "Recipe file with default values for the build")
	cmd.Flags().String("color", "auto", "Colour output: auto, always, or never")

	return cmd
}
