package stdout

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hejijunhao/lsaccess/internal/model"
	"github.com/hejijunhao/lsaccess/internal/output"
)

// Output writes the table to stdout.
type Output struct {
	w    io.Writer
	mode output.Mode
}

// New creates a stdout Output using the given delimiting mode.
func New(mode output.Mode) *Output {
	return NewWriter(os.Stdout, mode)
}

// NewWriter is New for an arbitrary writer, such as a command's output stream.
func NewWriter(w io.Writer, mode output.Mode) *Output {
	return &Output{w: w, mode: mode}
}

func (o *Output) WriteTable(_ context.Context, records []model.Record) error {
	if err := output.EncodeTable(o.w, records, o.mode); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}
