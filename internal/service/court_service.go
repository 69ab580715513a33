package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

// CourtService builds the court panel.
type CourtService interface {
	Panel(ctx context.Context) (dto.CourtResponse, error)
}

type courtService struct {
	tables TableService
	logger zerolog.Logger
}

// NewCourtService constructs the court panel service.
func NewCourtService(tables TableService, logger zerolog.Logger) CourtService {
	return &courtService{
		tables: tables,
		logger: logger.With().Str("component", "court_service").Logger(),
	}
}

func (s *courtService) Panel(ctx context.Context) (dto.CourtResponse, error) {
	students := s.tables.Load(ctx, sheets.StudentsSchema)
	logs := s.tables.Load(ctx, sheets.ActivitySchema)

	if students.Degraded || logs.Degraded {
		s.logger.Warn().
			Bool("students_degraded", students.Degraded).
			Bool("activity_degraded", logs.Degraded).
			Msg("serving court panel from degraded tables")
	}

	roster := ActiveRoster(studentsFromTable(students))
	cards := make([]dto.CourtCard, 0, len(roster))
	for _, student := range roster {
		cards = append(cards, dto.CourtCard{
			ID:        student.ID,
			Name:      student.Name,
			Remaining: student.Remaining,
			Payment:   string(student.Payment),
			Level:     CreditLevel(student.Remaining),
			Progress:  CreditProgress(student.Remaining),
		})
	}

	return dto.CourtResponse{
		Roster:   cards,
		Recent:   RecentActivity(activityFromTable(logs), courtRecentEntries),
		Degraded: students.Degraded || logs.Degraded,
		Warnings: students.Warnings,
	}, nil
}
