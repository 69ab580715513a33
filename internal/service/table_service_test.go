package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

func TestLoadServesRepeatReadsFromCache(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	schema := sheets.LedgerSchema

	require.NoError(t, s.tables.Append(ctx, schema, []string{"2024-03-01", "2024-03", "Ayşe", "-", "500", "-", "Income"}))

	first := s.tables.Load(ctx, schema)
	second := s.tables.Load(ctx, schema)

	assert.Equal(t, 1, s.opener.readsOf(schema.Title))
	require.Len(t, second.Rows, 1)
	assert.Equal(t, first.Revision, second.Revision)
	assert.Equal(t, first.Rows[0].Get(sheets.ColAmount), second.Rows[0].Get(sheets.ColAmount))
}

func TestWriteForcesNextReadToFetch(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	s.tables.Load(ctx, sheets.LedgerSchema)
	s.tables.Load(ctx, sheets.ActivitySchema)
	require.Equal(t, 1, s.opener.readsOf(sheets.LedgerSchema.Title))

	require.NoError(t, s.tables.Append(ctx, sheets.ActivitySchema, []string{"15-03-2024", "10:30", "Guest", "-", "Guest Lesson", "-"}))

	ledger := s.tables.Load(ctx, sheets.LedgerSchema)
	activity := s.tables.Load(ctx, sheets.ActivitySchema)

	// Writing one table drops every cached table of the document.
	assert.Equal(t, 2, s.opener.readsOf(sheets.LedgerSchema.Title))
	assert.Equal(t, 2, s.opener.readsOf(sheets.ActivitySchema.Title))
	assert.Empty(t, ledger.Rows)
	assert.Len(t, activity.Rows, 1)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	s.tables.Load(ctx, sheets.StudentsSchema)
	s.redis.FastForward(11 * time.Second)
	s.tables.Load(ctx, sheets.StudentsSchema)

	assert.Equal(t, 2, s.opener.readsOf(sheets.StudentsSchema.Title))
}

func TestLoadDegradesWhenStoreIsDown(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.opener.setDown(true)

	table := s.tables.Load(ctx, sheets.StudentsSchema)

	assert.True(t, table.Degraded)
	assert.Empty(t, table.Rows)
	assert.Equal(t, int64(-1), table.Revision)

	err := s.tables.Replace(ctx, sheets.StudentsSchema, table, [][]string{})
	assert.True(t, errors.Is(err, service.ErrTableUnavailable))

	// A degraded read is never cached.
	s.opener.setDown(false)
	again := s.tables.Load(ctx, sheets.StudentsSchema)
	assert.False(t, again.Degraded)
}

func TestReplaceRejectsStaleBasis(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	schema := sheets.StudentsSchema

	basis := s.tables.Load(ctx, schema)
	row := []string{"id-1", "Ayşe", "10", "10", "-", "Active", "Unpaid", "-"}
	require.NoError(t, s.tables.Replace(ctx, schema, basis, [][]string{row}))

	err := s.tables.Replace(ctx, schema, basis, [][]string{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sheets.ErrRevisionConflict))

	current := s.tables.Load(ctx, schema)
	require.Len(t, current.Rows, 1)
	assert.Equal(t, "Ayşe", current.Rows[0].Get(sheets.ColName))
}

func TestRecreateLeavesOnlySeed(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	schema := sheets.ScheduleSchema

	require.NoError(t, s.tables.Append(ctx, schema, []string{"07:00", "x", "", "", "", "", "", ""}))
	require.NoError(t, s.tables.Recreate(ctx, schema, [][]string{{"08:00", "", "", "", "", "", "", ""}}))

	table := s.tables.Load(ctx, schema)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "08:00", table.Rows[0].Get(sheets.ColHour))
}

func TestReplaceRejectsSnapshotTakenBeforeReset(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	schema := sheets.StudentsSchema

	createStudent(t, s, "Old", 5)
	stale := s.tables.Load(ctx, schema)
	require.Len(t, stale.Rows, 1)

	_, err := s.admin.Reset(ctx, admin)
	require.NoError(t, err)
	createStudent(t, s, "New", 5)

	err = s.tables.Replace(ctx, schema, stale, [][]string{{"id-old", "Old", "5", "5", "-", "Active", "Unpaid", "-"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sheets.ErrRevisionConflict))

	current := s.tables.Load(ctx, schema)
	require.Len(t, current.Rows, 1)
	assert.Equal(t, "New", current.Rows[0].Get(sheets.ColName))
}
