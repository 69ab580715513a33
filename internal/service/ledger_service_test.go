package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

func TestLedgerAddEntryResolvesStudent(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	student := createStudent(t, s, "Ayşe", 4)

	entry, err := s.ledger.AddEntry(ctx, admin, dto.LedgerEntryRequest{
		Type: "Income", Amount: decimal.NewFromInt(250), Student: "Ayşe", Note: "Racket stringing",
	})
	require.NoError(t, err)
	assert.Equal(t, student.ID, entry.StudentID)
	assert.Equal(t, "2024-03-15", entry.Date)
	assert.Equal(t, "2024-03", entry.Month)

	expense, err := s.ledger.AddEntry(ctx, admin, dto.LedgerEntryRequest{
		Type: "Expense", Amount: decimal.NewFromInt(90), Note: "Balls", Date: "2024-02-20",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LedgerGeneral, expense.Student)
	assert.Equal(t, "2024-02", expense.Month)

	_, err = s.ledger.AddEntry(ctx, admin, dto.LedgerEntryRequest{Type: "Income", Amount: decimal.Zero})
	assert.True(t, errors.Is(err, service.ErrInvalidAmount))

	_, err = s.ledger.AddEntry(ctx, admin, dto.LedgerEntryRequest{Type: "Refund", Amount: decimal.NewFromInt(1)})
	assert.True(t, isValidation(err))

	_, err = s.ledger.AddEntry(ctx, guest, dto.LedgerEntryRequest{Type: "Income", Amount: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, service.ErrForbidden))
}

func TestCashboxSummary(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.NoError(t, s.ledger.Record(ctx, models.LedgerEntry{Date: "2024-02-10", Amount: decimal.NewFromInt(400), Type: models.LedgerIncome}))
	require.NoError(t, s.ledger.Record(ctx, models.LedgerEntry{Date: "2024-03-01", Amount: decimal.NewFromInt(700), Type: models.LedgerIncome}))
	require.NoError(t, s.ledger.Record(ctx, models.LedgerEntry{Date: "2024-03-02", Amount: decimal.NewFromInt(150), Type: models.LedgerExpense}))

	cashbox, err := s.ledger.Cashbox(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, "2024-03", cashbox.Summary.CurrentMonth)
	assert.True(t, decimal.NewFromInt(700).Equal(cashbox.Summary.MonthIncome))
	assert.True(t, decimal.NewFromInt(1100).Equal(cashbox.Summary.TotalIncome))
	assert.True(t, decimal.NewFromInt(150).Equal(cashbox.Summary.TotalExpense))

	require.Len(t, cashbox.Months, 2)
	assert.Equal(t, "2024-02", cashbox.Months[0].Month)
	assert.True(t, decimal.NewFromInt(550).Equal(cashbox.Months[1].Net))

	require.Len(t, cashbox.Entries, 3)
	assert.Equal(t, models.LedgerExpense, cashbox.Entries[0].Type)
	assert.Equal(t, models.LedgerGeneral, cashbox.Entries[0].Student)
}

func TestCashboxReportsUnparsableAmounts(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.NoError(t, s.tables.Append(ctx, sheets.LedgerSchema, []string{"2024-03-03", "2024-03", "General", "-", "abc", "-", "Income"}))
	require.NoError(t, s.tables.Append(ctx, sheets.LedgerSchema, []string{"2024-03-04", "2024-03", "General", "-", "1.250,50", "-", "Income"}))

	cashbox, err := s.ledger.Cashbox(ctx, admin)
	require.NoError(t, err)
	require.Len(t, cashbox.Warnings, 1)
	assert.Equal(t, sheets.ColAmount, cashbox.Warnings[0].Column)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(cashbox.Summary.MonthIncome))
}

func TestLedgerRecordRejectsNonPositiveAmounts(t *testing.T) {
	s := newStack(t)
	err := s.ledger.Record(context.Background(), models.LedgerEntry{Amount: decimal.NewFromInt(-5), Type: models.LedgerIncome})
	assert.True(t, errors.Is(err, service.ErrInvalidAmount))
}
