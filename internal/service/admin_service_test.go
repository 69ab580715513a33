package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

func TestResetRecreatesEveryTable(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	student := createStudent(t, s, "Ayşe", 10)
	_, err := s.students.RecordPayment(ctx, admin, student.ID, dto.PaymentRequest{Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	_, err = s.schedule.UpdateCell(ctx, admin, dto.ScheduleCellRequest{Hour: "10:00", Day: "Monday", Label: "Ayşe"})
	require.NoError(t, err)

	resp, err := s.admin.Reset(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, []string{
		sheets.StudentsSchema.Title, sheets.LedgerSchema.Title, sheets.ActivitySchema.Title, sheets.ScheduleSchema.Title,
	}, resp.Tables)

	store, err := s.opener.Open(ctx, testDocument)
	require.NoError(t, err)
	for _, schema := range []sheets.Schema{sheets.StudentsSchema, sheets.LedgerSchema, sheets.ActivitySchema} {
		raw, err := store.ReadTable(ctx, schema.Title, schema.Columns)
		require.NoError(t, err, schema.Title)
		assert.Empty(t, raw.Records, schema.Title)
		assert.Equal(t, schema.Columns, raw.Header, schema.Title)
	}

	schedule := s.tables.Load(ctx, sheets.ScheduleSchema)
	require.Len(t, schedule.Rows, 15)
	assert.Equal(t, "", schedule.Rows[2].Get("Monday"))
}

func TestResetRequiresAdmin(t *testing.T) {
	s := newStack(t)
	_, err := s.admin.Reset(context.Background(), guest)
	assert.True(t, errors.Is(err, service.ErrForbidden))
}

func TestResetReportsPartialProgress(t *testing.T) {
	s := newStack(t)
	s.opener.setDown(true)

	resp, err := s.admin.Reset(context.Background(), admin)
	require.Error(t, err)
	assert.Empty(t, resp.Tables)
}
