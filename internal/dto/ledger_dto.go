package dto

import (
	"github.com/shopspring/decimal"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

// LedgerEntryRequest adds a manual cashbox entry.
type LedgerEntryRequest struct {
	Type    string          `json:"type" validate:"required,oneof=Income Expense"`
	Amount  decimal.Decimal `json:"amount"`
	Student string          `json:"student" validate:"max=120"`
	Note    string          `json:"note" validate:"max=500"`
	Date    string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// MonthlyRevenue sums the ledger of one month.
type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CashboxSummary holds the headline cashbox figures.
type CashboxSummary struct {
	CurrentMonth string          `json:"current_month"`
	MonthIncome  decimal.Decimal `json:"month_income"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// CashboxResponse is the cashbox view; entries are newest first.
type CashboxResponse struct {
	Summary  CashboxSummary       `json:"summary"`
	Months   []MonthlyRevenue     `json:"months"`
	Entries  []models.LedgerEntry `json:"entries"`
	Degraded bool                 `json:"degraded"`
	Warnings []sheets.Warning     `json:"warnings,omitempty"`
}
