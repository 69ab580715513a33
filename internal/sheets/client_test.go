package sheets_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/repository"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

func setupStore(t *testing.T) (*sheets.Client, repository.SpreadsheetRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Spreadsheet{}, &models.Worksheet{}, &models.WorksheetRow{}))

	repo := repository.NewSpreadsheetRepository(db)
	return sheets.NewClient(repo, zerolog.New(io.Discard)), repo
}

func TestClientOpenCachesHandle(t *testing.T) {
	client, _ := setupStore(t)
	ctx := context.Background()

	first, err := client.Open(ctx, "CourtMaster_DB")
	require.NoError(t, err)
	second, err := client.Open(ctx, "CourtMaster_DB")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "CourtMaster_DB", first.Name())

	_, err = client.Open(ctx, "  ")
	assert.Error(t, err)
}

func TestReadTableCreatesMissingTable(t *testing.T) {
	client, _ := setupStore(t)
	ctx := context.Background()
	doc, err := client.Open(ctx, "CourtMaster_DB")
	require.NoError(t, err)

	raw, err := doc.ReadTable(ctx, sheets.StudentsSchema.Title, sheets.StudentsSchema.Columns)
	require.NoError(t, err)

	assert.Empty(t, raw.Records)
	assert.Equal(t, sheets.StudentsSchema.Columns, raw.Header)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	client, _ := setupStore(t)
	ctx := context.Background()
	doc, err := client.Open(ctx, "CourtMaster_DB")
	require.NoError(t, err)

	schema := sheets.LedgerSchema
	rows := [][]string{
		{"2024-03-01", "2024-03", "Ayşe", "id-1", "500", "Package", "Income"},
		{"2024-03-02", "2024-03", "General", "-", "120,50", "Balls", "Expense"},
	}

	revision, err := doc.WriteTable(ctx, schema.Title, schema.Columns, rows, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), revision)

	raw, err := doc.ReadTable(ctx, schema.Title, schema.Columns)
	require.NoError(t, err)
	require.Len(t, raw.Records, len(rows))
	assert.Equal(t, revision, raw.Revision)

	for i, row := range rows {
		for j, column := range schema.Columns {
			assert.Equal(t, row[j], raw.Records[i][column])
		}
	}

	table := sheets.Normalize(raw, schema)
	assert.Equal(t, "120.5", table.Rows[1].Get(sheets.ColAmount))
}

func TestWriteTableRejectsStaleRevision(t *testing.T) {
	client, _ := setupStore(t)
	ctx := context.Background()
	doc, err := client.Open(ctx, "CourtMaster_DB")
	require.NoError(t, err)

	schema := sheets.ActivitySchema
	raw, err := doc.ReadTable(ctx, schema.Title, schema.Columns)
	require.NoError(t, err)

	_, err = doc.AppendRow(ctx, schema.Title, schema.Columns, []string{"01-03-2024", "10:00", "Ayşe", "-", "Lesson Consumed", "Remaining: 9"})
	require.NoError(t, err)

	_, err = doc.WriteTable(ctx, schema.Title, schema.Columns, [][]string{}, raw.Revision)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sheets.ErrRevisionConflict))

	var conflict *sheets.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, raw.Revision, conflict.ExpectedRevision)
	assert.Equal(t, raw.Revision+1, conflict.CurrentRevision)

	after, err := doc.ReadTable(ctx, schema.Title, schema.Columns)
	require.NoError(t, err)
	assert.Len(t, after.Records, 1)
}

func TestAppendRowKeepsInsertionOrder(t *testing.T) {
	client, _ := setupStore(t)
	ctx := context.Background()
	doc, err := client.Open(ctx, "CourtMaster_DB")
	require.NoError(t, err)

	schema := sheets.ActivitySchema
	for i := 0; i < 3; i++ {
		_, err := doc.AppendRow(ctx, schema.Title, schema.Columns, []string{"01-03-2024", fmt.Sprintf("1%d:00", i), "Ayşe", "-", "Payment", "-"})
		require.NoError(t, err)
	}

	raw, err := doc.ReadTable(ctx, schema.Title, schema.Columns)
	require.NoError(t, err)
	require.Len(t, raw.Records, 3)
	assert.Equal(t, "10:00", raw.Records[0][sheets.ColTime])
	assert.Equal(t, "12:00", raw.Records[2][sheets.ColTime])
}

func TestReadTableUsesStoredHeader(t *testing.T) {
	client, repo := setupStore(t)
	ctx := context.Background()
	doc, err := client.Open(ctx, "CourtMaster_DB")
	require.NoError(t, err)

	spreadsheet, err := repo.Open(ctx, "CourtMaster_DB")
	require.NoError(t, err)

	legacy := []string{sheets.ColName, sheets.ColRemaining}
	sheet, err := repo.CreateWorksheet(ctx, spreadsheet.ID, sheets.StudentsSchema.Title, legacy)
	require.NoError(t, err)
	_, err = repo.AppendRow(ctx, sheet.ID, []string{"Ayşe"})
	require.NoError(t, err)

	raw, err := doc.ReadTable(ctx, sheets.StudentsSchema.Title, sheets.StudentsSchema.Columns)
	require.NoError(t, err)
	require.Len(t, raw.Records, 1)
	assert.Equal(t, "", raw.Records[0][sheets.ColRemaining])

	table := sheets.Normalize(raw, sheets.StudentsSchema)
	assert.Equal(t, sheets.Missing, table.Rows[0].Get(sheets.ColID))
	assert.Equal(t, "Ayşe", table.Rows[0].Get(sheets.ColName))
}

func TestDeleteAndCreateTable(t *testing.T) {
	client, _ := setupStore(t)
	ctx := context.Background()
	doc, err := client.Open(ctx, "CourtMaster_DB")
	require.NoError(t, err)

	schema := sheets.ScheduleSchema
	require.NoError(t, doc.DeleteTable(ctx, schema.Title))

	written, err := doc.WriteTable(ctx, schema.Title, schema.Columns, [][]string{{"08:00", "A", "", "", "", "", "", ""}}, -1)
	require.NoError(t, err)

	require.NoError(t, doc.DeleteTable(ctx, schema.Title))
	require.NoError(t, doc.CreateTable(ctx, schema.Title, schema.Columns))

	raw, err := doc.ReadTable(ctx, schema.Title, schema.Columns)
	require.NoError(t, err)
	assert.Empty(t, raw.Records)
	assert.Greater(t, raw.Revision, written)
}

func TestRecreatedTableRejectsSnapshotsOfTheOldOne(t *testing.T) {
	client, _ := setupStore(t)
	ctx := context.Background()
	doc, err := client.Open(ctx, "CourtMaster_DB")
	require.NoError(t, err)

	schema := sheets.StudentsSchema
	_, err = doc.WriteTable(ctx, schema.Title, schema.Columns, [][]string{{"id-1", "Old", "5", "5", "-", "Active", "Paid", "-"}}, -1)
	require.NoError(t, err)
	stale, err := doc.ReadTable(ctx, schema.Title, schema.Columns)
	require.NoError(t, err)

	require.NoError(t, doc.DeleteTable(ctx, schema.Title))
	require.NoError(t, doc.CreateTable(ctx, schema.Title, schema.Columns))
	for i := int64(0); i < stale.Revision; i++ {
		_, err = doc.AppendRow(ctx, schema.Title, schema.Columns, []string{"id-2", "New", "5", "5", "-", "Active", "Paid", "-"})
		require.NoError(t, err)
	}

	_, err = doc.WriteTable(ctx, schema.Title, schema.Columns, [][]string{}, stale.Revision)
	assert.True(t, errors.Is(err, sheets.ErrRevisionConflict))
}
