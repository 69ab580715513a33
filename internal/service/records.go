package service

import (
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

const (
	lastActivityLayout = "02-01 15:04"
	logDateLayout      = "02-01-2006"
	logTimeLayout      = "15:04"
	ledgerDateLayout   = "2006-01-02"
	ledgerMonthLayout  = "2006-01"
)

func studentFromRow(row sheets.Row) models.Student {
	remaining := row.Int(sheets.ColRemaining)
	return models.Student{
		ID:           present(row.Get(sheets.ColID)),
		Name:         row.Get(sheets.ColName),
		Package:      row.Int(sheets.ColPackage),
		Remaining:    remaining,
		LastActivity: row.Get(sheets.ColLastActivity),
		Status:       models.ParseStudentStatus(row.Get(sheets.ColStatus), remaining),
		Payment:      models.PaymentStatus(row.Get(sheets.ColPayment)),
		Notes:        row.Get(sheets.ColNotes),
	}
}

func studentRecord(s models.Student) []string {
	return []string{
		orMissing(s.ID),
		s.Name,
		strconv.Itoa(s.Package),
		strconv.Itoa(s.Remaining),
		orMissing(s.LastActivity),
		string(s.Status),
		string(s.Payment),
		orMissing(s.Notes),
	}
}

func studentsFromTable(table sheets.Table) []models.Student {
	students := make([]models.Student, 0, len(table.Rows))
	for _, row := range table.Rows {
		students = append(students, studentFromRow(row))
	}
	return students
}

func ledgerFromRow(row sheets.Row) models.LedgerEntry {
	return models.LedgerEntry{
		Date:      row.Get(sheets.ColDate),
		Month:     row.Get(sheets.ColMonth),
		Student:   row.Get(sheets.ColStudent),
		StudentID: present(row.Get(sheets.ColStudentID)),
		Amount:    row.Number(sheets.ColAmount),
		Note:      row.Get(sheets.ColNote),
		Type:      models.LedgerType(row.Get(sheets.ColType)),
	}
}

func ledgerRecord(e models.LedgerEntry) []string {
	return []string{
		e.Date,
		e.Month,
		e.Student,
		orMissing(e.StudentID),
		e.Amount.String(),
		orMissing(e.Note),
		string(e.Type),
	}
}

func ledgerFromTable(table sheets.Table) []models.LedgerEntry {
	entries := make([]models.LedgerEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, ledgerFromRow(row))
	}
	return entries
}

func activityFromRow(row sheets.Row) models.ActivityEntry {
	return models.ActivityEntry{
		Date:      row.Get(sheets.ColDate),
		Time:      row.Get(sheets.ColTime),
		Student:   row.Get(sheets.ColStudent),
		StudentID: present(row.Get(sheets.ColStudentID)),
		Action:    row.Get(sheets.ColAction),
		Detail:    row.Get(sheets.ColDetail),
	}
}

func activityRecord(e models.ActivityEntry) []string {
	return []string{
		e.Date,
		e.Time,
		e.Student,
		orMissing(e.StudentID),
		e.Action,
		orMissing(e.Detail),
	}
}

func activityFromTable(table sheets.Table) []models.ActivityEntry {
	entries := make([]models.ActivityEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, activityFromRow(row))
	}
	return entries
}

func slotFromRow(row sheets.Row) models.ScheduleSlot {
	slot := models.ScheduleSlot{
		Hour: row.Get(sheets.ColHour),
		Days: make(map[string]string, len(sheets.Weekdays)),
	}
	for _, day := range sheets.Weekdays {
		label := row.Get(day)
		if label == sheets.Missing {
			label = ""
		}
		slot.Days[day] = label
	}
	return slot
}

func slotRecord(slot models.ScheduleSlot) []string {
	record := make([]string, 0, len(sheets.Weekdays)+1)
	record = append(record, slot.Hour)
	for _, day := range sheets.Weekdays {
		record = append(record, slot.Days[day])
	}
	return record
}

// present maps the missing-cell sentinel back to an empty value.
func present(value string) string {
	if value == sheets.Missing {
		return ""
	}
	return value
}

func orMissing(value string) string {
	if strings.TrimSpace(value) == "" {
		return sheets.Missing
	}
	return value
}

// cleanText strips markup from free text typed into forms.
func cleanText(policy *bluemonday.Policy, value string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(value)))
}
