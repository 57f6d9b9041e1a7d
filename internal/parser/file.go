package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/hejijunhao/lsaccess/internal/model"
)

const readBufSize = 64 * 1024 // 64KB

// Stats counts what happened to the lines of one input.
type Stats struct {
	Lines   int // lines read
	Matched int // lines that produced a record
	Skipped int // lines that did not match
}

// Option configures ParseFile and ParseReader.
type Option func(*options)

type options struct {
	onRecord func(lineNo int, r model.Record)
	onSkip   func(lineNo int, line string)
}

// WithRecordHandler registers fn to be called for every parsed record.
// Line numbers start at 1.
func WithRecordHandler(fn func(lineNo int, r model.Record)) Option {
	return func(o *options) { o.onRecord = fn }
}

// WithSkipHandler registers fn to be called for every line that did not match.
func WithSkipHandler(fn func(lineNo int, line string)) Option {
	return func(o *options) { o.onSkip = fn }
}

// ParseFile reads the file at path line by line and returns the records of
// all matching lines in input order.
func ParseFile(path string, opts ...Option) ([]model.Record, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("parser: open %s: %w", path, err)
	}
	defer f.Close()

	records, stats, err := ParseReader(f, opts...)
	if err != nil {
		return nil, stats, fmt.Errorf("parser: read %s: %w", path, err)
	}
	return records, stats, nil
}

// ParseReader is ParseFile for an already open input. Both "\n" and "\r\n"
// terminators are accepted, and a final line without one is still parsed.
// A leading byte order mark selects UTF-8 or UTF-16 decoding; input without
// one is passed through unchanged.
func ParseReader(r io.Reader, opts ...Option) ([]model.Record, Stats, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	dec := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	br := bufio.NewReaderSize(dec, readBufSize)

	records := make([]model.Record, 0)
	var stats Stats
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			stats.Lines++
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")

			if rec, ok := ParseLine(line); ok {
				stats.Matched++
				records = append(records, rec)
				if o.onRecord != nil {
					o.onRecord(stats.Lines, rec)
				}
			} else {
				stats.Skipped++
				if o.onSkip != nil {
					o.onSkip(stats.Lines, line)
				}
			}
		}
		if err == io.EOF {
			return records, stats, nil
		}
		if err != nil {
			return nil, stats, err
		}
	}
}
