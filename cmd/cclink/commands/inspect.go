package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the record of the last successful build of an output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			workDir, _ := cmd.Flags().GetString("workdir")
			asJSON, _ := cmd.Flags().GetBool("json")

			record, err := c.app.Inspect(cmd.Context(), output, workDir)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(record); err != nil {
					return zerr.Wrap(err, "failed to encode record")
				}
				return nil
			}

			printRecord(cmd.OutOrStdout(), record)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output to inspect")
	cmd.Flags().String("workdir", "", "Directory the build ran in (default: current directory)")
	cmd.Flags().Bool("json", false, "Print the record as JSON")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func printRecord(w io.Writer, r *domain.BuildRecord) {
	_, _ = fmt.Fprintf(w, "output:   %s\n", r.Output)
	_, _ = fmt.Fprintf(w, "digest:   %s\n", r.OutputDigest)
	_, _ = fmt.Fprintf(w, "built:    %s\n", r.Timestamp.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "duration: %v\n", r.Duration)
	_, _ = fmt.Fprintf(w, "compile:  %s\n", r.CompileCommand)
	_, _ = fmt.Fprintf(w, "link:     %s\n", r.LinkCommand)
	_, _ = fmt.Fprintf(w, "sources:  %s\n", strings.Join(r.Sources, " "))
	_, _ = fmt.Fprintf(w, "objects:  %s\n", strings.Join(r.Objects, " "))
}
