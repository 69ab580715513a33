package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

// ScheduleService manages the weekly schedule grid.
type ScheduleService interface {
	Get(ctx context.Context) (dto.ScheduleResponse, error)
	UpdateCell(ctx context.Context, actor Actor, req dto.ScheduleCellRequest) (dto.ScheduleResponse, error)
	Replace(ctx context.Context, actor Actor, req dto.ScheduleReplaceRequest) (dto.ScheduleResponse, error)
	SeedRows() [][]string
}

type scheduleService struct {
	tables    TableService
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	hours     []string
	logger    zerolog.Logger
}

// NewScheduleService constructs the schedule service for the hours
// startHour through endHour, both included.
func NewScheduleService(tables TableService, validator *validator.Validate, startHour, endHour int, logger zerolog.Logger) ScheduleService {
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}
	hours := make([]string, 0)
	for hour := startHour; hour <= endHour; hour++ {
		hours = append(hours, fmt.Sprintf("%02d:00", hour))
	}

	return &scheduleService{
		tables:    tables,
		validator: validator,
		sanitizer: bluemonday.StrictPolicy(),
		hours:     hours,
		logger:    logger.With().Str("component", "schedule_service").Logger(),
	}
}

// SeedRows is the empty grid written when the schedule does not exist yet.
func (s *scheduleService) SeedRows() [][]string {
	rows := make([][]string, 0, len(s.hours))
	for _, slot := range s.seedSlots() {
		rows = append(rows, slotRecord(slot))
	}
	return rows
}

// Get returns the grid, writing the empty seed grid on the first read.
func (s *scheduleService) Get(ctx context.Context) (dto.ScheduleResponse, error) {
	table := s.tables.Load(ctx, sheets.ScheduleSchema)
	if table.Degraded {
		return s.response(nil, true), nil
	}
	if len(table.Rows) > 0 {
		return s.response(slotsFromTable(table), false), nil
	}

	slots := s.seedSlots()
	err := s.tables.Replace(ctx, sheets.ScheduleSchema, table, slotRows(slots))
	switch {
	case errors.Is(err, sheets.ErrRevisionConflict):
		// Seeded concurrently; serve what is stored now.
		reloaded := s.tables.Load(ctx, sheets.ScheduleSchema)
		return s.response(slotsFromTable(reloaded), reloaded.Degraded), nil
	case err != nil:
		return dto.ScheduleResponse{}, err
	}

	s.logger.Info().Int("rows", len(slots)).Msg("schedule seeded")
	return s.response(slots, false), nil
}

func (s *scheduleService) UpdateCell(ctx context.Context, actor Actor, req dto.ScheduleCellRequest) (dto.ScheduleResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return dto.ScheduleResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleResponse{}, err
	}

	table, slots, err := s.current(ctx)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}

	idx := slotIndex(slots, req.Hour)
	if idx < 0 || !isWeekday(req.Day) {
		return dto.ScheduleResponse{}, ErrInvalidScheduleCell
	}
	slots[idx].Days[req.Day] = cleanText(s.sanitizer, req.Label)

	if err := s.tables.Replace(ctx, sheets.ScheduleSchema, table, slotRows(slots)); err != nil {
		return dto.ScheduleResponse{}, err
	}
	return s.response(slots, false), nil
}

// Replace overwrites every label of the grid. The hours must be exactly the
// stored ones; absent weekdays are cleared.
func (s *scheduleService) Replace(ctx context.Context, actor Actor, req dto.ScheduleReplaceRequest) (dto.ScheduleResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return dto.ScheduleResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduleResponse{}, err
	}

	table, slots, err := s.current(ctx)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}
	if len(req.Slots) != len(slots) {
		return dto.ScheduleResponse{}, ErrInvalidScheduleCell
	}

	seen := make(map[string]bool, len(req.Slots))
	for _, incoming := range req.Slots {
		idx := slotIndex(slots, incoming.Hour)
		if idx < 0 || seen[incoming.Hour] {
			return dto.ScheduleResponse{}, ErrInvalidScheduleCell
		}
		seen[incoming.Hour] = true

		for day := range incoming.Days {
			if !isWeekday(day) {
				return dto.ScheduleResponse{}, ErrInvalidScheduleCell
			}
		}
		for _, day := range sheets.Weekdays {
			slots[idx].Days[day] = cleanText(s.sanitizer, incoming.Days[day])
		}
	}

	if err := s.tables.Replace(ctx, sheets.ScheduleSchema, table, slotRows(slots)); err != nil {
		return dto.ScheduleResponse{}, err
	}
	return s.response(slots, false), nil
}

// current returns the stored grid, or the seed grid when nothing is stored.
func (s *scheduleService) current(ctx context.Context) (sheets.Table, []models.ScheduleSlot, error) {
	table := s.tables.Load(ctx, sheets.ScheduleSchema)
	if table.Degraded {
		return table, nil, ErrTableUnavailable
	}
	if len(table.Rows) == 0 {
		return table, s.seedSlots(), nil
	}
	return table, slotsFromTable(table), nil
}

func (s *scheduleService) seedSlots() []models.ScheduleSlot {
	slots := make([]models.ScheduleSlot, 0, len(s.hours))
	for _, hour := range s.hours {
		slot := models.ScheduleSlot{Hour: hour, Days: make(map[string]string, len(sheets.Weekdays))}
		for _, day := range sheets.Weekdays {
			slot.Days[day] = ""
		}
		slots = append(slots, slot)
	}
	return slots
}

func (s *scheduleService) response(slots []models.ScheduleSlot, degraded bool) dto.ScheduleResponse {
	if slots == nil {
		slots = []models.ScheduleSlot{}
	}
	return dto.ScheduleResponse{Days: sheets.Weekdays, Slots: slots, Degraded: degraded}
}

func slotsFromTable(table sheets.Table) []models.ScheduleSlot {
	slots := make([]models.ScheduleSlot, 0, len(table.Rows))
	for _, row := range table.Rows {
		slots = append(slots, slotFromRow(row))
	}
	return slots
}

func slotRows(slots []models.ScheduleSlot) [][]string {
	rows := make([][]string, 0, len(slots))
	for _, slot := range slots {
		rows = append(rows, slotRecord(slot))
	}
	return rows
}

func slotIndex(slots []models.ScheduleSlot, hour string) int {
	for i, slot := range slots {
		if slot.Hour == hour {
			return i
		}
	}
	return -1
}

func isWeekday(day string) bool {
	for _, weekday := range sheets.Weekdays {
		if weekday == day {
			return true
		}
	}
	return false
}
