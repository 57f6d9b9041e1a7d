package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hejijunhao/lsaccess/internal/model"
	"github.com/hejijunhao/lsaccess/internal/output"
)

const defaultBufSize = 64 * 1024 // 64KB

// Option configures a file Output.
type Option func(*Output)

// WithMode sets the field delimiting mode. Default: output.ModeQuoted.
func WithMode(m output.Mode) Option {
	return func(o *Output) { o.mode = m }
}

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(o *Output) { o.bufSize = bytes }
}

// Output writes a table to a file. The destination is replaced as a whole:
// rows go to a temporary file in the same directory which is renamed over
// path only once everything has been written.
type Output struct {
	path    string
	mode    output.Mode
	bufSize int
}

// New creates a file output for the given path. Nothing is opened until
// WriteTable is called.
func New(path string, opts ...Option) *Output {
	o := &Output{
		path:    path,
		mode:    output.ModeQuoted,
		bufSize: defaultBufSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Path returns the destination path.
func (o *Output) Path() string { return o.path }

// WriteTable writes the header and all records, replacing any existing file.
func (o *Output) WriteTable(_ context.Context, records []model.Record) error {
	dir := filepath.Dir(o.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("file output: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(o.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file output: create %s: %w", o.path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriterSize(tmp, o.bufSize)
	if err := output.EncodeTable(w, records, o.mode); err != nil {
		return fmt.Errorf("file output: write: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("file output: flush: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("file output: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file output: close: %w", err)
	}
	if err := os.Rename(tmpName, o.path); err != nil {
		return fmt.Errorf("file output: rename to %s: %w", o.path, err)
	}
	committed = true
	return nil
}

// WriteTable writes records to path in the given mode.
func WriteTable(path string, records []model.Record, mode output.Mode) error {
	return New(path, WithMode(mode)).WriteTable(context.Background(), records)
}
