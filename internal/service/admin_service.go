package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

// SeedSource provides the rows a table is recreated with.
type SeedSource interface {
	SeedRows() [][]string
}

// AdminService runs maintenance commands over the whole document.
type AdminService interface {
	Reset(ctx context.Context, actor Actor) (dto.ResetResponse, error)
}

type adminService struct {
	tables   TableService
	schedule SeedSource
	logger   zerolog.Logger
}

// NewAdminService constructs the maintenance service.
func NewAdminService(tables TableService, schedule SeedSource, logger zerolog.Logger) AdminService {
	return &adminService{
		tables:   tables,
		schedule: schedule,
		logger:   logger.With().Str("component", "admin_service").Logger(),
	}
}

// Reset drops and recreates every table. Tables reset before a failure stay
// reset; the failure is returned.
func (s *adminService) Reset(ctx context.Context, actor Actor) (dto.ResetResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return dto.ResetResponse{}, err
	}

	resp := dto.ResetResponse{Tables: make([]string, 0, len(sheets.AllSchemas()))}
	for _, schema := range sheets.AllSchemas() {
		var seed [][]string
		if schema.Title == sheets.ScheduleSchema.Title && s.schedule != nil {
			seed = s.schedule.SeedRows()
		}

		if err := s.tables.Recreate(ctx, schema, seed); err != nil {
			s.logger.Error().Err(err).Str("table", schema.Title).Strs("reset", resp.Tables).Msg("reset stopped")
			return resp, fmt.Errorf("reset %s: %w", schema.Title, err)
		}
		resp.Tables = append(resp.Tables, schema.Title)
	}

	s.logger.Warn().Str("session_id", actor.SessionID).Strs("tables", resp.Tables).Msg("document reset")
	return resp, nil
}
