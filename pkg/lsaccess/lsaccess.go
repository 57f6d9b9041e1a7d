package lsaccess

import (
	"github.com/hejijunhao/lsaccess/internal/model"
	"github.com/hejijunhao/lsaccess/internal/naming"
	"github.com/hejijunhao/lsaccess/internal/output"
	"github.com/hejijunhao/lsaccess/internal/output/file"
	"github.com/hejijunhao/lsaccess/internal/parser"
)

// UnknownDate is what ExtractDate returns for names without a date.
const UnknownDate = naming.UnknownDate

// Record is one parsed access log line. Empty strings mark absent fields.
type Record = model.Record

// Header returns the column names of the CSV table, in Record field order.
func Header() []string {
	return append([]string(nil), model.Columns...)
}

// ParseLine extracts a record from one log line. It reports false when the
// line lacks any of the required tags.
func ParseLine(line string) (Record, bool) {
	return parser.ParseLine(line)
}

// ParseFile returns the records of all parseable lines of the file at path,
// in file order. Unparseable lines are skipped.
func ParseFile(path string) ([]Record, error) {
	records, _, err := parser.ParseFile(path)
	return records, err
}

// Stats reports how many lines of a file were read, parsed and skipped.
type Stats = parser.Stats

// ParseFileStats is ParseFile that also returns line counts.
func ParseFileStats(path string) ([]Record, Stats, error) {
	return parser.ParseFile(path)
}

// WriteOption configures WriteTable.
type WriteOption func(*writeOptions)

type writeOptions struct {
	mode output.Mode
}

// WithLegacyFormat writes values joined by commas without any quoting.
// Values containing commas or line breaks then corrupt their row.
func WithLegacyFormat() WriteOption {
	return func(o *writeOptions) { o.mode = output.ModeLegacy }
}

// WriteTable replaces the file at path with a header row and one row per
// record.
func WriteTable(path string, records []Record, opts ...WriteOption) error {
	o := writeOptions{mode: output.ModeQuoted}
	for _, opt := range opts {
		opt(&o)
	}
	return file.WriteTable(path, records, o.mode)
}

// ExtractDate returns the YYYY-MM-DD date following "ls_access.log." in
// filename, or UnknownDate.
func ExtractDate(filename string) string {
	return naming.ExtractDate(filename)
}
