// Package cli implements the lsaccess command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hejijunhao/lsaccess/internal/config"
	"github.com/hejijunhao/lsaccess/internal/logging"
	"github.com/hejijunhao/lsaccess/internal/output"
	"github.com/hejijunhao/lsaccess/internal/pipeline"
)

var (
	version = "dev"
	commit  = "none"
)

// app is the state shared by all commands once flags are resolved.
type app struct {
	configPath string
	sourceDir  string
	archiveDir string
	csvMode    string
	logLevel   string
	logFormat  string

	cfg    config.Config
	mode   output.Mode
	logger *slog.Logger
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "lsaccess",
		Short: "Convert license server access logs to CSV",
		Long: "lsaccess extracts the tagged fields of license server access log lines\n" +
			"(ls_access.log.YYYY-MM-DD) and writes them as a CSV table.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd)
		},
	}

	a.bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) bindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&a.configPath, "config", "c", "", "YAML config file (env LSACCESS_CONFIG)")
	fs.StringVar(&a.sourceDir, "source-dir", "", "directory containing access logs")
	fs.StringVar(&a.archiveDir, "archive-dir", "", "directory receiving copies and tables")
	fs.StringVar(&a.csvMode, "csv-mode", "", "field delimiting: quoted or legacy")
	fs.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
}

// resolve applies precedence: flag > env > config file > default.
func (a *app) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("source-dir") {
		cfg.Source.Dir = a.sourceDir
	}
	if flags.Changed("archive-dir") {
		cfg.Output.ArchiveDir = a.archiveDir
	}
	if flags.Changed("csv-mode") {
		cfg.Output.CSVMode = a.csvMode
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}

	mode, err := output.ParseMode(cfg.Output.CSVMode)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.mode = mode
	a.logger = logging.Init(cmd.ErrOrStderr(), cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))
	return nil
}

func (a *app) pipeline() *pipeline.Pipeline {
	return pipeline.New(a.cfg.Output.ArchiveDir,
		pipeline.WithMode(a.mode),
		pipeline.WithOutputPrefix(a.cfg.Output.Prefix),
		pipeline.WithLogger(a.logger),
	)
}
