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
)

func TestRecordDefaultsTimestampAndStudent(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.NoError(t, s.activity.Record(ctx, models.ActivityEntry{Action: "Court Closed"}))
	assert.Error(t, s.activity.Record(ctx, models.ActivityEntry{Action: "  "}))

	history, err := s.activity.History(ctx, admin, dto.HistoryRequest{})
	require.NoError(t, err)
	require.Len(t, history.Entries, 1)
	entry := history.Entries[0]
	assert.Equal(t, "15-03-2024", entry.Date)
	assert.Equal(t, "10:30", entry.Time)
	assert.Equal(t, models.Guest, entry.Student)
}

func TestHistoryFiltersAndLimits(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	ayse := createStudent(t, s, "Ayşe", 5)
	createStudent(t, s, "Mert", 5)
	for i := 0; i < 3; i++ {
		_, err := s.students.ConsumeLesson(ctx, admin, ayse.ID)
		require.NoError(t, err)
	}

	all, err := s.activity.History(ctx, admin, dto.HistoryRequest{})
	require.NoError(t, err)
	assert.Equal(t, 5, all.Total)

	limited, err := s.activity.History(ctx, admin, dto.HistoryRequest{Student: "Ayşe", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, limited.Total)
	require.Len(t, limited.Entries, 2)
	assert.Equal(t, "Remaining: 2", limited.Entries[0].Detail)
	assert.Equal(t, "Remaining: 3", limited.Entries[1].Detail)

	byID, err := s.activity.History(ctx, admin, dto.HistoryRequest{Student: ayse.ID})
	require.NoError(t, err)
	assert.Equal(t, 4, byID.Total)

	_, err = s.activity.History(ctx, guest, dto.HistoryRequest{})
	assert.True(t, errors.Is(err, service.ErrForbidden))
}

func TestRecordGuestLesson(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	entry, err := s.activity.RecordGuestLesson(ctx, admin, dto.GuestLessonRequest{Note: "Trial", Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)
	assert.Equal(t, models.ActionGuestLesson, entry.Action)
	assert.Equal(t, models.Guest, entry.Student)

	free, err := s.activity.RecordGuestLesson(ctx, admin, dto.GuestLessonRequest{})
	require.NoError(t, err)
	assert.Equal(t, "-", free.Detail)

	cashbox, err := s.ledger.Cashbox(ctx, admin)
	require.NoError(t, err)
	require.Len(t, cashbox.Entries, 1)
	assert.Equal(t, models.Guest, cashbox.Entries[0].Student)
	assert.Equal(t, "Trial", cashbox.Entries[0].Note)

	history, err := s.activity.History(ctx, admin, dto.HistoryRequest{Student: models.Guest})
	require.NoError(t, err)
	assert.Equal(t, 2, history.Total)

	_, err = s.activity.RecordGuestLesson(ctx, admin, dto.GuestLessonRequest{Amount: decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, service.ErrInvalidAmount))
}
