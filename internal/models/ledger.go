package models

import "github.com/shopspring/decimal"

// LedgerType tells income from expense; amounts themselves are never negative.
type LedgerType string

const (
	LedgerIncome  LedgerType = "Income"
	LedgerExpense LedgerType = "Expense"

	// LedgerGeneral marks entries not tied to a student.
	LedgerGeneral = "General"
	// Guest marks anonymous visitors in both the ledger and the activity log.
	Guest = "Guest"
)

// LedgerEntry is one append-only financial event.
type LedgerEntry struct {
	Date      string          `json:"date"`
	Month     string          `json:"month"`
	Student   string          `json:"student"`
	StudentID string          `json:"student_id"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	Type      LedgerType      `json:"type"`
}

// IsIncome reports whether the entry adds money to the cashbox.
func (e LedgerEntry) IsIncome() bool {
	return e.Type == LedgerIncome
}
