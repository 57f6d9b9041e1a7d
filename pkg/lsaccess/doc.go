// Package lsaccess converts license server access logs into CSV tables.
//
// Each log line carries tag-delimited fields such as <time>, <ip>, <type>,
// <status> and <statusmsg>, optionally a <request> block and trailing
// <authentication> and <validation> tags. Lines missing a required field
// are skipped.
//
// Quick start:
//
//	records, err := lsaccess.ParseFile("ls_access.log.2024-03-15")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name := "parsed_log_" + lsaccess.ExtractDate("ls_access.log.2024-03-15") + ".csv"
//	if err := lsaccess.WriteTable(name, records); err != nil {
//	    log.Fatal(err)
//	}
//
// Tables use standard CSV quoting by default. WithLegacyFormat reproduces
// the older unquoted comma join.
package lsaccess
