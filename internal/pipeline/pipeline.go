package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/hejijunhao/lsaccess/internal/model"
	"github.com/hejijunhao/lsaccess/internal/naming"
	"github.com/hejijunhao/lsaccess/internal/output"
	"github.com/hejijunhao/lsaccess/internal/output/file"
	"github.com/hejijunhao/lsaccess/internal/parser"
	"github.com/hejijunhao/lsaccess/internal/source"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for run diagnostics. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMode sets the table delimiting mode. Default: output.ModeQuoted.
func WithMode(m output.Mode) Option {
	return func(p *Pipeline) { p.mode = m }
}

// WithOutputPrefix sets the table file name prefix. Default: "parsed_log_".
func WithOutputPrefix(prefix string) Option {
	return func(p *Pipeline) { p.outputPrefix = prefix }
}

// Pipeline converts one access log at a time: the source is copied to the
// archive directory, parsed, and its table written next to the copy.
type Pipeline struct {
	archiveDir   string
	outputPrefix string
	mode         output.Mode
	logger       *slog.Logger
}

// Result describes one conversion.
type Result struct {
	RunID    string
	Source   string
	Archived string // archived copy; empty for ConvertTo
	Output   string // table path; empty for ConvertTo
	Stats    parser.Stats
}

// New creates a Pipeline writing into archiveDir.
func New(archiveDir string, opts ...Option) *Pipeline {
	p := &Pipeline{
		archiveDir:   archiveDir,
		outputPrefix: naming.DefaultOutputPrefix,
		mode:         output.ModeQuoted,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Convert archives path, parses it and writes the table into the archive
// directory under a name derived from the file's date.
func (p *Pipeline) Convert(ctx context.Context, path string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	res, log := p.start(path)

	archived, err := source.Archive(path, p.archiveDir)
	if err != nil {
		return res, fmt.Errorf("pipeline archive: %w", err)
	}
	res.Archived = archived
	log.Debug("archived source", "archived", archived)

	res.Output = filepath.Join(p.archiveDir, naming.OutputName(p.outputPrefix, filepath.Base(path)))
	out := file.New(res.Output, file.WithMode(p.mode))
	if err := p.run(ctx, log, &res, out); err != nil {
		return res, err
	}
	log.Info("table written", "output", res.Output, "records", res.Stats.Matched)
	return res, nil
}

// ConvertTo parses path and writes the table to out without archiving.
func (p *Pipeline) ConvertTo(ctx context.Context, path string, out output.Output) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	res, log := p.start(path)
	if err := p.run(ctx, log, &res, out); err != nil {
		return res, err
	}
	return res, nil
}

func (p *Pipeline) start(path string) (Result, *slog.Logger) {
	res := Result{RunID: uuid.NewString(), Source: path}
	return res, p.logger.With("run_id", res.RunID, "file", filepath.Base(path))
}

func (p *Pipeline) run(ctx context.Context, log *slog.Logger, res *Result, out output.Output) error {
	records, stats, err := parser.ParseFile(res.Source,
		parser.WithRecordHandler(func(lineNo int, r model.Record) {
			log.Debug("parsed entry", "line", lineNo, "record", r)
		}),
		parser.WithSkipHandler(func(lineNo int, line string) {
			log.Warn("could not parse line", "line", lineNo, "text", line)
		}),
	)
	res.Stats = stats
	if err != nil {
		return fmt.Errorf("pipeline parse: %w", err)
	}
	log.Info("parsed log", "lines", stats.Lines, "matched", stats.Matched, "skipped", stats.Skipped)
	if len(records) == 0 {
		log.Warn("no entries were parsed")
	}

	if err := out.WriteTable(ctx, records); err != nil {
		return fmt.Errorf("pipeline output: %w", err)
	}
	return nil
}
