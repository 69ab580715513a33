package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/repository"
)

// ErrRevisionConflict indicates a table overwrite lost a race with another writer.
var ErrRevisionConflict = errors.New("revision conflict")

// ConflictError carries the revisions involved in a rejected overwrite.
type ConflictError struct {
	Table            string
	ExpectedRevision int64
	CurrentRevision  int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("revision conflict on %s: expected %d, current %d", e.Table, e.ExpectedRevision, e.CurrentRevision)
}

// Is lets errors.Is match ErrRevisionConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrRevisionConflict
}

// Store is an opened tabular document.
type Store interface {
	Name() string
	ReadTable(ctx context.Context, title string, columns []string) (RawTable, error)
	WriteTable(ctx context.Context, title string, columns []string, rows [][]string, expectedRevision int64) (int64, error)
	AppendRow(ctx context.Context, title string, columns []string, row []string) (int64, error)
	CreateTable(ctx context.Context, title string, columns []string) error
	DeleteTable(ctx context.Context, title string) error
}

// Opener resolves a document by name.
type Opener interface {
	Open(ctx context.Context, name string) (Store, error)
}

// Client opens documents and keeps one handle per document for the life of the process.
type Client struct {
	repo   repository.SpreadsheetRepository
	logger zerolog.Logger

	mu   sync.Mutex
	docs map[string]*Document
}

// NewClient constructs a tabular store client.
func NewClient(repo repository.SpreadsheetRepository, logger zerolog.Logger) *Client {
	return &Client{
		repo:   repo,
		logger: logger.With().Str("component", "sheets_client").Logger(),
		docs:   make(map[string]*Document),
	}
}

// Open returns the cached handle for name, opening the document on first use.
func (c *Client) Open(ctx context.Context, name string) (Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("document name must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if doc, ok := c.docs[name]; ok {
		return doc, nil
	}

	model, err := c.repo.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open document %q: %w", name, err)
	}

	doc := &Document{
		repo:   c.repo,
		model:  model,
		logger: c.logger.With().Str("document", name).Logger(),
	}
	c.docs[name] = doc
	c.logger.Info().Str("document", name).Uint("document_id", model.ID).Msg("document opened")
	return doc, nil
}

// Document is a handle on one tabular document.
type Document struct {
	repo   repository.SpreadsheetRepository
	model  models.Spreadsheet
	logger zerolog.Logger
}

// Name returns the document name.
func (d *Document) Name() string {
	return d.model.Name
}

// ReadTable returns every record of the worksheet, creating it with columns
// as its header when it does not exist yet.
func (d *Document) ReadTable(ctx context.Context, title string, columns []string) (RawTable, error) {
	sheet, err := d.resolve(ctx, title, columns)
	if err != nil {
		return RawTable{}, err
	}

	header, err := repository.DecodeCells(sheet.Header)
	if err != nil {
		return RawTable{}, err
	}

	rows, err := d.repo.Rows(ctx, sheet.ID)
	if err != nil {
		return RawTable{}, fmt.Errorf("read %s: %w", title, err)
	}

	table := RawTable{
		Title:    title,
		Header:   header,
		Records:  make([]map[string]string, 0, len(rows)),
		Revision: sheet.Revision,
	}
	for _, row := range rows {
		cells, err := repository.DecodeCells(row.Cells)
		if err != nil {
			return RawTable{}, err
		}
		record := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(cells) {
				record[column] = cells[i]
			} else {
				record[column] = ""
			}
		}
		table.Records = append(table.Records, record)
	}

	return table, nil
}

// WriteTable replaces the whole worksheet with columns and rows. With a
// non-negative expectedRevision the write is rejected when the worksheet has
// changed since that revision.
func (d *Document) WriteTable(ctx context.Context, title string, columns []string, rows [][]string, expectedRevision int64) (int64, error) {
	sheet, err := d.resolve(ctx, title, columns)
	if err != nil {
		return 0, err
	}

	revision, err := d.repo.ReplaceRows(ctx, sheet.ID, columns, rows, expectedRevision)
	if errors.Is(err, repository.ErrStaleRevision) {
		current := int64(-1)
		if latest, lookupErr := d.repo.Worksheet(ctx, d.model.ID, title); lookupErr == nil {
			current = latest.Revision
		}
		return 0, &ConflictError{Table: title, ExpectedRevision: expectedRevision, CurrentRevision: current}
	}
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", title, err)
	}

	d.logger.Debug().Str("table", title).Int("rows", len(rows)).Int64("revision", revision).Msg("table written")
	return revision, nil
}

// AppendRow adds one row after the last one without reading the table.
func (d *Document) AppendRow(ctx context.Context, title string, columns []string, row []string) (int64, error) {
	sheet, err := d.resolve(ctx, title, columns)
	if err != nil {
		return 0, err
	}

	revision, err := d.repo.AppendRow(ctx, sheet.ID, row)
	if err != nil {
		return 0, fmt.Errorf("append %s: %w", title, err)
	}
	return revision, nil
}

// CreateTable adds an empty worksheet with the given header.
func (d *Document) CreateTable(ctx context.Context, title string, columns []string) error {
	if _, err := d.repo.CreateWorksheet(ctx, d.model.ID, title, columns); err != nil {
		return fmt.Errorf("create %s: %w", title, err)
	}
	return nil
}

// DeleteTable drops the worksheet and its rows. Missing worksheets are ignored.
func (d *Document) DeleteTable(ctx context.Context, title string) error {
	if err := d.repo.DeleteWorksheet(ctx, d.model.ID, title); err != nil {
		return fmt.Errorf("delete %s: %w", title, err)
	}
	return nil
}

func (d *Document) resolve(ctx context.Context, title string, columns []string) (models.Worksheet, error) {
	sheet, err := d.repo.Worksheet(ctx, d.model.ID, title)
	if err == nil {
		return sheet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Worksheet{}, fmt.Errorf("resolve %s: %w", title, err)
	}

	sheet, err = d.repo.CreateWorksheet(ctx, d.model.ID, title, columns)
	if err != nil {
		return models.Worksheet{}, fmt.Errorf("create %s: %w", title, err)
	}
	d.logger.Info().Str("table", title).Msg("worksheet created")
	return sheet, nil
}
