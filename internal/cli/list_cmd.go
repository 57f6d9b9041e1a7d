package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hejijunhao/lsaccess/internal/source"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List access logs in the source directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := source.List(a.cfg.Source.Dir, a.cfg.Source.Prefix)
			if errors.Is(err, source.ErrNoFiles) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No log files found starting with '%s' in %s.\n", a.cfg.Source.Prefix, a.cfg.Source.Dir)
				return nil
			}
			if err != nil {
				return err
			}
			printFiles(cmd.OutOrStdout(), files)
			return nil
		},
	}
}

func printFiles(w io.Writer, files []string) {
	_, _ = fmt.Fprintln(w, "Found log files:")
	for i, f := range files {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, f)
	}
}
