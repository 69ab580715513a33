package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
)

func TestCourtPanel(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	createStudent(t, s, "Ayşe", 20)
	createStudent(t, s, "Mert", 3)
	createStudent(t, s, "Finished", 0)
	frozen := createStudent(t, s, "Ece", 5)
	_, err := s.students.ChangeStatus(ctx, admin, frozen.ID, dto.StatusRequest{Action: dto.StatusActionFreeze})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, s.activity.Record(ctx, models.ActivityEntry{Action: "Note"}))
	}

	panel, err := s.court.Panel(ctx)
	require.NoError(t, err)
	assert.False(t, panel.Degraded)

	require.Len(t, panel.Roster, 2)
	assert.Equal(t, "Ayşe", panel.Roster[0].Name)
	assert.Equal(t, service.LevelHigh, panel.Roster[0].Level)
	assert.Equal(t, 100, panel.Roster[0].Progress)
	assert.Equal(t, service.LevelMedium, panel.Roster[1].Level)
	assert.Equal(t, 20, panel.Roster[1].Progress)

	// 4 creations, 1 status change and 4 notes; only the last seven show.
	require.Len(t, panel.Recent, 7)
	assert.Equal(t, "Note", panel.Recent[0].Action)
}

func TestCourtPanelDegraded(t *testing.T) {
	s := newStack(t)
	s.opener.setDown(true)

	var logs bytes.Buffer
	court := service.NewCourtService(s.tables, zerolog.New(&logs))

	panel, err := court.Panel(context.Background())
	require.NoError(t, err)
	assert.True(t, panel.Degraded)
	assert.Empty(t, panel.Roster)
	assert.Empty(t, panel.Recent)
	assert.Contains(t, logs.String(), "serving court panel from degraded tables")
	assert.Contains(t, logs.String(), `"students_degraded":true`)
}
