package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

// ActivityRecorder appends rows to the activity log.
type ActivityRecorder interface {
	Record(ctx context.Context, entry models.ActivityEntry) error
}

// ActivityService exposes the activity log.
type ActivityService interface {
	ActivityRecorder
	History(ctx context.Context, actor Actor, req dto.HistoryRequest) (dto.HistoryResponse, error)
	RecordGuestLesson(ctx context.Context, actor Actor, req dto.GuestLessonRequest) (models.ActivityEntry, error)
}

type activityService struct {
	tables    TableService
	ledger    LedgerRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	now       Clock
	logger    zerolog.Logger
}

// NewActivityService constructs the activity log service.
func NewActivityService(tables TableService, ledger LedgerRecorder, validator *validator.Validate, clock Clock, logger zerolog.Logger) ActivityService {
	return &activityService{
		tables:    tables,
		ledger:    ledger,
		validator: validator,
		sanitizer: bluemonday.StrictPolicy(),
		now:       clock,
		logger:    logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry models.ActivityEntry) error {
	if strings.TrimSpace(entry.Action) == "" {
		return fmt.Errorf("action is required")
	}
	if entry.Date == "" || entry.Time == "" {
		now := s.now()
		entry.Date = now.Format(logDateLayout)
		entry.Time = now.Format(logTimeLayout)
	}
	if strings.TrimSpace(entry.Student) == "" {
		entry.Student = models.Guest
	}

	if err := s.tables.Append(ctx, sheets.ActivitySchema, activityRecord(entry)); err != nil {
		s.logger.Error().Err(err).Str("action", entry.Action).Msg("failed to append activity log")
		return err
	}
	return nil
}

func (s *activityService) History(ctx context.Context, actor Actor, req dto.HistoryRequest) (dto.HistoryResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return dto.HistoryResponse{}, err
	}

	table := s.tables.Load(ctx, sheets.ActivitySchema)
	entries := activityFromTable(table)

	if key := strings.TrimSpace(req.Student); key != "" {
		students := studentsFromTable(s.tables.Load(ctx, sheets.StudentsSchema))
		if idx := findStudent(students, key); idx >= 0 {
			entries = FilterActivity(entries, &students[idx], "")
		} else {
			entries = FilterActivity(entries, nil, key)
		}
	}

	total := len(entries)
	limit := req.Limit
	if limit <= 0 {
		limit = total
	}

	return dto.HistoryResponse{
		Entries:  RecentActivity(entries, limit),
		Total:    total,
		Degraded: table.Degraded,
	}, nil
}

func (s *activityService) RecordGuestLesson(ctx context.Context, actor Actor, req dto.GuestLessonRequest) (models.ActivityEntry, error) {
	if err := requireAdmin(actor); err != nil {
		return models.ActivityEntry{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.ActivityEntry{}, err
	}
	if req.Amount.IsNegative() {
		return models.ActivityEntry{}, ErrInvalidAmount
	}

	now := s.now()
	note := cleanText(s.sanitizer, req.Note)

	if req.Amount.IsPositive() {
		err := s.ledger.Record(ctx, models.LedgerEntry{
			Date:    now.Format(ledgerDateLayout),
			Month:   now.Format(ledgerMonthLayout),
			Student: models.Guest,
			Amount:  req.Amount,
			Note:    orMissing(note),
			Type:    models.LedgerIncome,
		})
		if err != nil {
			return models.ActivityEntry{}, fmt.Errorf("record guest fee: %w", err)
		}
	}

	entry := models.ActivityEntry{
		Date:    now.Format(logDateLayout),
		Time:    now.Format(logTimeLayout),
		Student: models.Guest,
		Action:  models.ActionGuestLesson,
		Detail:  orMissing(note),
	}
	if err := s.Record(ctx, entry); err != nil {
		return models.ActivityEntry{}, err
	}
	return entry, nil
}
