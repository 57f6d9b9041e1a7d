package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hejijunhao/lsaccess/internal/source"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Interactively pick access logs to convert",
		Long: "List the access logs in the source directory, ask which one to convert,\n" +
			"convert it, and offer to convert another.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			s := &session{
				app:         a,
				cmd:         cmd,
				in:          bufio.NewScanner(in),
				out:         cmd.OutOrStdout(),
				interactive: isTerminal(in),
			}
			s.in.Split(bufio.ScanWords)
			return s.loop()
		},
	}
}

// isTerminal reports whether r is a terminal. Prompts are only printed then.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type session struct {
	app         *app
	cmd         *cobra.Command
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
}

func (s *session) prompt(msg string) {
	if s.interactive {
		_, _ = fmt.Fprint(s.out, msg)
	}
}

// next returns the next whitespace separated token, or false at end of input.
func (s *session) next() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *session) loop() error {
	cfg := s.app.cfg
	p := s.app.pipeline()

	for {
		files, err := source.List(cfg.Source.Dir, cfg.Source.Prefix)
		if errors.Is(err, source.ErrNoFiles) {
			_, _ = fmt.Fprintf(s.out, "No log files found starting with '%s' in %s.\n", cfg.Source.Prefix, cfg.Source.Dir)
			return nil
		}
		if err != nil {
			return err
		}
		printFiles(s.out, files)

		s.prompt("Enter the number of the file to process: ")
		tok, ok := s.next()
		if !ok {
			return s.in.Err()
		}
		choice, err := strconv.Atoi(tok)
		if err != nil || choice < 1 || choice > len(files) {
			return fmt.Errorf("invalid choice %q: enter a number between 1 and %d", tok, len(files))
		}

		res, err := p.Convert(s.cmd.Context(), files[choice-1])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(s.out, "Log file copied and converted to CSV: %s (%d entries)\n", res.Output, res.Stats.Matched)

		s.prompt("Would you like to analyze another file? (y/n): ")
		tok, ok = s.next()
		if !ok || tok == "n" || tok == "N" {
			return s.in.Err()
		}
	}
}
