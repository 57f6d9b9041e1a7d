package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/hejijunhao/lsaccess/internal/model"
)

// Mode selects how field values are delimited.
type Mode int

const (
	// ModeQuoted follows RFC 4180 quoting: a field is quoted only when it
	// contains a comma, a double quote, a line break or leading whitespace.
	ModeQuoted Mode = iota
	// ModeLegacy joins raw values with commas. Values containing a comma or
	// a line break corrupt the row.
	ModeLegacy
)

func (m Mode) String() string {
	switch m {
	case ModeLegacy:
		return "legacy"
	default:
		return "quoted"
	}
}

// ParseMode maps "quoted" or "legacy" to a Mode. The empty string is ModeQuoted.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "quoted", "csv":
		return ModeQuoted, nil
	case "legacy", "raw":
		return ModeLegacy, nil
	default:
		return ModeQuoted, fmt.Errorf("unknown csv mode %q: use 'quoted' or 'legacy'", s)
	}
}

// EncodeTable writes the header row followed by one row per record, each
// terminated by "\n".
func EncodeTable(w io.Writer, records []model.Record, mode Mode) error {
	if mode == ModeLegacy {
		return encodeLegacy(w, records)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(model.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeLegacy(w io.Writer, records []model.Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(model.Columns, ",") + "\n"); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := bw.WriteString(strings.Join(r.Values(), ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
