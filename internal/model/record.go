package model

// Columns is the fixed header of the emitted table, in Record field order.
var Columns = []string{
	"Timestamp",
	"IP Address",
	"Event Type",
	"Host Name",
	"Client ID",
	"Architecture Name",
	"User Name",
	"User ID",
	"Machine ID",
	"Tool Name",
	"Status",
	"Status Message",
	"Authentication",
	"Validation",
}

// Record is one access log line reduced to its fixed set of fields.
// An empty string means the field was absent.
type Record struct {
	Timestamp string // <time>, required
	IP        string // <ip>, required
	EventType string // <type>, required

	// Request group: either all six are set or all six are empty.
	HostName  string
	ClientID  string
	ArchName  string
	UserName  string
	UserID    string
	MachineID string
	ToolName  string

	Status    string // <status>, required
	StatusMsg string // <statusmsg>, required

	Authentication string // optional
	Validation     string // optional
}

// HasRequest reports whether the record carries the request group.
func (r Record) HasRequest() bool {
	return r.HostName != "" || r.ClientID != "" || r.ArchName != "" ||
		r.UserName != "" || r.UserID != "" || r.MachineID != "" || r.ToolName != ""
}

// Values returns the field values in Columns order.
func (r Record) Values() []string {
	return []string{
		r.Timestamp,
		r.IP,
		r.EventType,
		r.HostName,
		r.ClientID,
		r.ArchName,
		r.UserName,
		r.UserID,
		r.MachineID,
		r.ToolName,
		r.Status,
		r.StatusMsg,
		r.Authentication,
		r.Validation,
	}
}
