package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hejijunhao/lsaccess/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Convert access logs as they are written",
		Long: "Watch the source directory and convert every access log once it has been\n" +
			"quiet for the debounce period. Runs until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("debounce") {
				a.cfg.Watch.Debounce, _ = cmd.Flags().GetDuration("debounce")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watch.New(a.cfg.Source.Dir, a.cfg.Source.Prefix, a.pipeline(),
				watch.WithDebounce(a.cfg.Watch.Debounce),
				watch.WithLogger(a.logger),
			)
			if err := w.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()
			a.logger.Info("shutting down watcher")
			w.Stop()
			return nil
		},
	}
	cmd.Flags().Duration("debounce", 0, "quiet period before a changed file is converted (default from config)")
	return cmd
}
