// Package naming derives output names from access log file names.
package naming

import "regexp"

const (
	// FilePrefix is the name prefix shared by all access log files.
	FilePrefix = "ls_access.log"

	// UnknownDate is returned by ExtractDate when a name has no date token.
	UnknownDate = "unknown_date"

	// DefaultOutputPrefix is prepended to the date to form the table file name.
	DefaultOutputPrefix = "parsed_log_"
)

var dateRe = regexp.MustCompile(`ls_access\.log\.(\d{4}-\d{2}-\d{2})`)

// ExtractDate returns the YYYY-MM-DD token that follows "ls_access.log." in
// filename, or UnknownDate.
func ExtractDate(filename string) string {
	m := dateRe.FindStringSubmatch(filename)
	if m == nil {
		return UnknownDate
	}
	return m[1]
}

// OutputName returns the table file name for a log file name.
func OutputName(prefix, filename string) string {
	if prefix == "" {
		prefix = DefaultOutputPrefix
	}
	return prefix + ExtractDate(filename) + ".csv"
}
