package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
)

const (
	courtRecentEntries = 7
	progressFullScale  = 15
)

// Credit badge levels shown on the court panel.
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

// ActiveRoster keeps the students currently on the court, in table order.
func ActiveRoster(students []models.Student) []models.Student {
	roster := make([]models.Student, 0, len(students))
	for _, student := range students {
		if student.IsActive() {
			roster = append(roster, student)
		}
	}
	return roster
}

// CreditLevel buckets a remaining balance for display.
func CreditLevel(remaining int) string {
	switch {
	case remaining > 5:
		return LevelHigh
	case remaining > 2:
		return LevelMedium
	default:
		return LevelLow
	}
}

// CreditProgress is the remaining balance as a percentage of a full card, capped at 100.
func CreditProgress(remaining int) int {
	if remaining <= 0 {
		return 0
	}
	percent := remaining * 100 / progressFullScale
	if percent > 100 {
		return 100
	}
	return percent
}

// RecentActivity returns the last n log entries, most recent first.
func RecentActivity(entries []models.ActivityEntry, n int) []models.ActivityEntry {
	start := 0
	if n >= 0 && len(entries) > n {
		start = len(entries) - n
	}
	return reverseActivity(entries[start:])
}

// MonthlyRevenue groups ledger entries by month bucket, oldest month first.
func MonthlyRevenue(entries []models.LedgerEntry) []dto.MonthlyRevenue {
	byMonth := map[string]*dto.MonthlyRevenue{}
	for _, entry := range entries {
		bucket, ok := byMonth[entry.Month]
		if !ok {
			bucket = &dto.MonthlyRevenue{Month: entry.Month, Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[entry.Month] = bucket
		}
		switch entry.Type {
		case models.LedgerIncome:
			bucket.Income = bucket.Income.Add(entry.Amount)
		case models.LedgerExpense:
			bucket.Expense = bucket.Expense.Add(entry.Amount)
		}
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	result := make([]dto.MonthlyRevenue, 0, len(months))
	for _, month := range months {
		bucket := byMonth[month]
		bucket.Net = bucket.Income.Sub(bucket.Expense)
		result = append(result, *bucket)
	}
	return result
}

// SummarizeCashbox computes this month's income and the all-time totals.
func SummarizeCashbox(entries []models.LedgerEntry, currentMonth string) dto.CashboxSummary {
	summary := dto.CashboxSummary{
		CurrentMonth: currentMonth,
		MonthIncome:  decimal.Zero,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, entry := range entries {
		switch entry.Type {
		case models.LedgerIncome:
			summary.TotalIncome = summary.TotalIncome.Add(entry.Amount)
			if entry.Month == currentMonth {
				summary.MonthIncome = summary.MonthIncome.Add(entry.Amount)
			}
		case models.LedgerExpense:
			summary.TotalExpense = summary.TotalExpense.Add(entry.Amount)
		}
	}
	return summary
}

// StudentTimeline merges the student's log rows and income rows. Each source
// keeps its insertion order, logs come before ledger rows, and the result is
// reversed so the newest rows lead.
func StudentTimeline(student models.Student, logs []models.ActivityEntry, ledger []models.LedgerEntry) []dto.TimelineItem {
	items := make([]dto.TimelineItem, 0)
	for _, entry := range logs {
		if !belongsTo(student, entry.StudentID, entry.Student) {
			continue
		}
		items = append(items, dto.TimelineItem{
			Kind:   dto.TimelineActivity,
			Date:   entry.Date,
			Time:   entry.Time,
			Label:  entry.Action,
			Detail: entry.Detail,
		})
	}
	for _, entry := range ledger {
		if !entry.IsIncome() || !belongsTo(student, entry.StudentID, entry.Student) {
			continue
		}
		amount := entry.Amount
		items = append(items, dto.TimelineItem{
			Kind:   dto.TimelineLedger,
			Date:   entry.Date,
			Label:  string(entry.Type),
			Detail: entry.Note,
			Amount: &amount,
		})
	}

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// FilterActivity keeps the log rows of one student, or all rows for an empty key.
func FilterActivity(entries []models.ActivityEntry, student *models.Student, name string) []models.ActivityEntry {
	if student == nil && name == "" {
		return entries
	}
	filtered := make([]models.ActivityEntry, 0)
	for _, entry := range entries {
		if student != nil && belongsTo(*student, entry.StudentID, entry.Student) {
			filtered = append(filtered, entry)
			continue
		}
		if student == nil && entry.Student == name {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// belongsTo joins a history row to a student by ID, falling back to the name
// for rows written before IDs existed.
func belongsTo(student models.Student, studentID, name string) bool {
	if studentID != "" && student.ID != "" {
		return studentID == student.ID
	}
	return name == student.Name
}

func reverseActivity(entries []models.ActivityEntry) []models.ActivityEntry {
	reversed := make([]models.ActivityEntry, len(entries))
	for i, entry := range entries {
		reversed[len(entries)-1-i] = entry
	}
	return reversed
}
