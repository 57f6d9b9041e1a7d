package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hejijunhao/lsaccess/internal/output/stdout"
	"github.com/hejijunhao/lsaccess/internal/source"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		all      bool
		toStdout bool
	)

	cmd := &cobra.Command{
		Use:   "convert [file...]",
		Short: "Convert access logs to CSV",
		Long: "Copy each file to the archive directory and write parsed_log_<date>.csv next to it.\n" +
			"With --stdout the table is printed instead and nothing is archived.",
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if all {
				listed, err := source.List(a.cfg.Source.Dir, a.cfg.Source.Prefix)
				if err != nil {
					return err
				}
				files = append(files, listed...)
			}
			if len(files) == 0 {
				return fmt.Errorf("no files given: pass file paths or --all")
			}
			if toStdout && len(files) > 1 {
				return fmt.Errorf("--stdout accepts a single file, got %d", len(files))
			}

			p := a.pipeline()
			for _, f := range files {
				if toStdout {
					out := stdout.NewWriter(cmd.OutOrStdout(), a.mode)
					if _, err := p.ConvertTo(cmd.Context(), f, out); err != nil {
						return err
					}
					continue
				}
				res, err := p.Convert(cmd.Context(), f)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Log file copied and converted to CSV: %s (%d entries)\n", res.Output, res.Stats.Matched)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "convert every access log in the source directory")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the table to stdout instead of the archive")
	return cmd
}
