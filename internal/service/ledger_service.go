package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

// LedgerRecorder appends rows to the ledger.
type LedgerRecorder interface {
	Record(ctx context.Context, entry models.LedgerEntry) error
}

// LedgerService exposes the cashbox.
type LedgerService interface {
	LedgerRecorder
	Cashbox(ctx context.Context, actor Actor) (dto.CashboxResponse, error)
	AddEntry(ctx context.Context, actor Actor, req dto.LedgerEntryRequest) (models.LedgerEntry, error)
}

type ledgerService struct {
	tables    TableService
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	now       Clock
	logger    zerolog.Logger
}

// NewLedgerService constructs the cashbox service.
func NewLedgerService(tables TableService, validator *validator.Validate, clock Clock, logger zerolog.Logger) LedgerService {
	return &ledgerService{
		tables:    tables,
		validator: validator,
		sanitizer: bluemonday.StrictPolicy(),
		now:       clock,
		logger:    logger.With().Str("component", "ledger_service").Logger(),
	}
}

func (s *ledgerService) Record(ctx context.Context, entry models.LedgerEntry) error {
	if !entry.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if entry.Date == "" {
		entry.Date = s.now().Format(ledgerDateLayout)
	}
	if entry.Month == "" {
		entry.Month = monthOf(entry.Date)
	}
	if strings.TrimSpace(entry.Student) == "" {
		entry.Student = models.LedgerGeneral
	}

	if err := s.tables.Append(ctx, sheets.LedgerSchema, ledgerRecord(entry)); err != nil {
		s.logger.Error().Err(err).Str("student", entry.Student).Msg("failed to append ledger entry")
		return err
	}
	return nil
}

func (s *ledgerService) Cashbox(ctx context.Context, actor Actor) (dto.CashboxResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return dto.CashboxResponse{}, err
	}

	table := s.tables.Load(ctx, sheets.LedgerSchema)
	entries := ledgerFromTable(table)

	newestFirst := make([]models.LedgerEntry, len(entries))
	for i, entry := range entries {
		newestFirst[len(entries)-1-i] = entry
	}

	return dto.CashboxResponse{
		Summary:  SummarizeCashbox(entries, s.now().Format(ledgerMonthLayout)),
		Months:   MonthlyRevenue(entries),
		Entries:  newestFirst,
		Degraded: table.Degraded,
		Warnings: table.Warnings,
	}, nil
}

func (s *ledgerService) AddEntry(ctx context.Context, actor Actor, req dto.LedgerEntryRequest) (models.LedgerEntry, error) {
	if err := requireAdmin(actor); err != nil {
		return models.LedgerEntry{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.LedgerEntry{}, err
	}
	if !req.Amount.IsPositive() {
		return models.LedgerEntry{}, ErrInvalidAmount
	}

	date := s.now().Format(ledgerDateLayout)
	if req.Date != "" {
		date = req.Date
	}

	entry := models.LedgerEntry{
		Date:    date,
		Month:   monthOf(date),
		Student: models.LedgerGeneral,
		Amount:  req.Amount,
		Note:    orMissing(cleanText(s.sanitizer, req.Note)),
		Type:    models.LedgerType(req.Type),
	}

	if name := cleanText(s.sanitizer, req.Student); name != "" {
		entry.Student = name
		students := studentsFromTable(s.tables.Load(ctx, sheets.StudentsSchema))
		if idx := findStudent(students, name); idx >= 0 {
			entry.Student = students[idx].Name
			entry.StudentID = students[idx].ID
		}
	}

	if err := s.Record(ctx, entry); err != nil {
		return models.LedgerEntry{}, err
	}
	return entry, nil
}

func monthOf(date string) string {
	parsed, err := time.Parse(ledgerDateLayout, date)
	if err != nil {
		if len(date) >= len(ledgerMonthLayout) {
			return date[:len(ledgerMonthLayout)]
		}
		return date
	}
	return parsed.Format(ledgerMonthLayout)
}
