// Package parser extracts access log records from pseudo-XML log lines.
//
// A line is scanned left to right with a cursor. Each recognized tag pair is
// located after the previous one, any text in between is ignored, and field
// content is the shortest run up to the nearest closing tag.
package parser

import (
	"strings"

	"github.com/hejijunhao/lsaccess/internal/model"
)

type tag struct {
	open, close string
}

func newTag(name string) tag {
	return tag{open: "<" + name + ">", close: "</" + name + ">"}
}

var (
	tagTime           = newTag("time")
	tagIP             = newTag("ip")
	tagType           = newTag("type")
	tagRequest        = newTag("request")
	tagStatus         = newTag("status")
	tagStatusMsg      = newTag("statusmsg")
	tagAuthentication = newTag("authentication")
	tagValidation     = newTag("validation")

	// requestTags are the children of <request>, in the order they must appear.
	requestTags = [...]tag{
		newTag("hostName"),
		newTag("clientID"),
		newTag("archName"),
		newTag("userName"),
		newTag("userID"),
		newTag("machineID"),
		newTag("toolName"),
	}
)

// cursor walks a line. Failed lookups leave pos unchanged.
type cursor struct {
	line string
	pos  int
}

// next finds t at or after the cursor and returns the text up to the nearest
// closing tag, advancing past it.
func (c *cursor) next(t tag) (string, bool) {
	i := strings.Index(c.line[c.pos:], t.open)
	if i < 0 {
		return "", false
	}
	start := c.pos + i + len(t.open)
	j := strings.Index(c.line[start:], t.close)
	if j < 0 {
		return "", false
	}
	c.pos = start + j + len(t.close)
	return c.line[start : start+j], true
}

// skip advances past the next occurrence of lit.
func (c *cursor) skip(lit string) bool {
	i := strings.Index(c.line[c.pos:], lit)
	if i < 0 {
		return false
	}
	c.pos += i + len(lit)
	return true
}

// ParseLine extracts a record from line. It reports false when any of
// <time>, <ip>, <type>, <status> or <statusmsg> cannot be found in that order.
func ParseLine(line string) (model.Record, bool) {
	c := cursor{line: line}
	var (
		r  model.Record
		ok bool
	)

	if r.Timestamp, ok = c.next(tagTime); !ok {
		return model.Record{}, false
	}
	if r.IP, ok = c.next(tagIP); !ok {
		return model.Record{}, false
	}
	if r.EventType, ok = c.next(tagType); !ok {
		return model.Record{}, false
	}

	c.request(&r)

	if r.Status, ok = c.next(tagStatus); !ok {
		return model.Record{}, false
	}
	if r.StatusMsg, ok = c.next(tagStatusMsg); !ok {
		return model.Record{}, false
	}

	r.Authentication, _ = c.next(tagAuthentication)
	r.Validation, _ = c.next(tagValidation)
	return r, true
}

// request fills the request group when <request> sits directly at the cursor
// and all of its children and the closing tag are present. Otherwise r and
// the cursor are left untouched.
func (c *cursor) request(r *model.Record) {
	if !strings.HasPrefix(c.line[c.pos:], tagRequest.open) {
		return
	}
	sub := cursor{line: c.line, pos: c.pos + len(tagRequest.open)}

	var vals [len(requestTags)]string
	for i, t := range requestTags {
		v, ok := sub.next(t)
		if !ok {
			return
		}
		vals[i] = v
	}
	if !sub.skip(tagRequest.close) {
		return
	}

	r.HostName = vals[0]
	r.ClientID = vals[1]
	r.ArchName = vals[2]
	r.UserName = vals[3]
	r.UserID = vals[4]
	r.MachineID = vals[5]
	r.ToolName = vals[6]
	c.pos = sub.pos
}
