package sheets

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Missing fills cells whose column is absent from the stored data.
const Missing = "-"

// Column names shared by the dashboard worksheets.
const (
	ColID           = "ID"
	ColName         = "Name"
	ColPackage      = "Package"
	ColRemaining    = "Remaining"
	ColLastActivity = "Last Activity"
	ColStatus       = "Status"
	ColPayment      = "Payment"
	ColNotes        = "Notes"

	ColDate      = "Date"
	ColMonth     = "Month"
	ColStudent   = "Student"
	ColStudentID = "Student ID"
	ColAmount    = "Amount"
	ColNote      = "Note"
	ColType      = "Type"

	ColTime   = "Time"
	ColAction = "Action"
	ColDetail = "Detail"

	ColHour = "Hour"
)

// Weekdays are the schedule columns, in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Schema declares a worksheet: its title, header row and numeric columns.
type Schema struct {
	Title   string
	Columns []string
	Numeric []string
}

var (
	StudentsSchema = Schema{
		Title:   "Students",
		Columns: []string{ColID, ColName, ColPackage, ColRemaining, ColLastActivity, ColStatus, ColPayment, ColNotes},
		Numeric: []string{ColPackage, ColRemaining},
	}
	LedgerSchema = Schema{
		Title:   "Ledger",
		Columns: []string{ColDate, ColMonth, ColStudent, ColStudentID, ColAmount, ColNote, ColType},
		Numeric: []string{ColAmount},
	}
	ActivitySchema = Schema{
		Title:   "Activity",
		Columns: []string{ColDate, ColTime, ColStudent, ColStudentID, ColAction, ColDetail},
	}
	ScheduleSchema = Schema{
		Title:   "Schedule",
		Columns: append([]string{ColHour}, Weekdays...),
	}
)

// AllSchemas lists every worksheet of the dashboard document.
func AllSchemas() []Schema {
	return []Schema{StudentsSchema, LedgerSchema, ActivitySchema, ScheduleSchema}
}

// IsNumeric reports whether column is parsed as a number.
func (s Schema) IsNumeric(column string) bool {
	for _, c := range s.Numeric {
		if c == column {
			return true
		}
	}
	return false
}

// HasColumn reports whether column belongs to the declared header.
func (s Schema) HasColumn(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Fingerprint identifies the declared header; cache entries are keyed by it.
func (s Schema) Fingerprint() string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.Join(s.Columns, "\x1f")))
	return fmt.Sprintf("%08x", h.Sum32())
}
