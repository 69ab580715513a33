package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
)

// ErrStaleRevision indicates the worksheet changed since the caller read it.
var ErrStaleRevision = errors.New("stale worksheet revision")

const rowBatchSize = 200

// SpreadsheetRepository persists tabular documents, their worksheets and rows.
type SpreadsheetRepository interface {
	Open(ctx context.Context, name string) (models.Spreadsheet, error)
	Worksheet(ctx context.Context, spreadsheetID uint, title string) (models.Worksheet, error)
	CreateWorksheet(ctx context.Context, spreadsheetID uint, title string, header []string) (models.Worksheet, error)
	DeleteWorksheet(ctx context.Context, spreadsheetID uint, title string) error
	Rows(ctx context.Context, worksheetID uint) ([]models.WorksheetRow, error)
	ReplaceRows(ctx context.Context, worksheetID uint, header []string, rows [][]string, expectedRevision int64) (int64, error)
	AppendRow(ctx context.Context, worksheetID uint, cells []string) (int64, error)
}

type spreadsheetRepository struct {
	db *gorm.DB
}

// NewSpreadsheetRepository constructs the gorm backed spreadsheet repository.
func NewSpreadsheetRepository(db *gorm.DB) SpreadsheetRepository {
	return &spreadsheetRepository{db: db}
}

func (r *spreadsheetRepository) Open(ctx context.Context, name string) (models.Spreadsheet, error) {
	var doc models.Spreadsheet
	err := r.db.WithContext(ctx).
		Where(models.Spreadsheet{Name: name}).
		FirstOrCreate(&doc).Error
	if err != nil {
		return models.Spreadsheet{}, err
	}
	return doc, nil
}

func (r *spreadsheetRepository) Worksheet(ctx context.Context, spreadsheetID uint, title string) (models.Worksheet, error) {
	return findWorksheet(r.db.WithContext(ctx), spreadsheetID, title)
}

// CreateWorksheet adds an empty worksheet starting at the document's revision
// floor, so a recreated worksheet never reuses an earlier revision.
func (r *spreadsheetRepository) CreateWorksheet(ctx context.Context, spreadsheetID uint, title string, header []string) (models.Worksheet, error) {
	encoded, err := encodeCells(header)
	if err != nil {
		return models.Worksheet{}, err
	}

	var sheet models.Worksheet
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var floor int64
		if err := tx.Model(&models.Spreadsheet{}).
			Where("id = ?", spreadsheetID).
			Select("revision_floor").
			Scan(&floor).Error; err != nil {
			return err
		}

		sheet = models.Worksheet{
			SpreadsheetID: spreadsheetID,
			Title:         title,
			Header:        encoded,
			Revision:      floor,
		}
		return tx.Create(&sheet).Error
	})
	if err != nil {
		return models.Worksheet{}, err
	}
	return sheet, nil
}

// DeleteWorksheet drops the worksheet and its rows and raises the document's
// revision floor past the worksheet's last revision.
func (r *spreadsheetRepository) DeleteWorksheet(ctx context.Context, spreadsheetID uint, title string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sheet, err := findWorksheet(tx, spreadsheetID, title)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("worksheet_id = ?", sheet.ID).Delete(&models.WorksheetRow{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Worksheet{}, sheet.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Spreadsheet{}).
			Where("id = ? AND revision_floor <= ?", spreadsheetID, sheet.Revision).
			Update("revision_floor", sheet.Revision+1).Error
	})
}

// findWorksheet looks a worksheet up by title; a miss is gorm.ErrRecordNotFound.
func findWorksheet(db *gorm.DB, spreadsheetID uint, title string) (models.Worksheet, error) {
	var sheet models.Worksheet
	result := db.Where("spreadsheet_id = ? AND title = ?", spreadsheetID, title).Limit(1).Find(&sheet)
	if result.Error != nil {
		return models.Worksheet{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Worksheet{}, gorm.ErrRecordNotFound
	}
	return sheet, nil
}

func (r *spreadsheetRepository) Rows(ctx context.Context, worksheetID uint) ([]models.WorksheetRow, error) {
	var rows []models.WorksheetRow
	err := r.db.WithContext(ctx).
		Where("worksheet_id = ?", worksheetID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceRows clears the worksheet and writes header and rows in one transaction.
// A negative expectedRevision skips the revision check.
func (r *spreadsheetRepository) ReplaceRows(ctx context.Context, worksheetID uint, header []string, rows [][]string, expectedRevision int64) (int64, error) {
	encodedHeader, err := encodeCells(header)
	if err != nil {
		return 0, err
	}

	var revision int64
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&models.Worksheet{}).Where("id = ?", worksheetID)
		if expectedRevision >= 0 {
			update = update.Where("revision = ?", expectedRevision)
		}
		result := update.Updates(map[string]interface{}{
			"header":   encodedHeader,
			"revision": gorm.Expr("revision + 1"),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if expectedRevision >= 0 {
				return ErrStaleRevision
			}
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("worksheet_id = ?", worksheetID).Delete(&models.WorksheetRow{}).Error; err != nil {
			return err
		}

		if len(rows) > 0 {
			records := make([]models.WorksheetRow, 0, len(rows))
			for i, cells := range rows {
				encoded, err := encodeCells(cells)
				if err != nil {
					return err
				}
				records = append(records, models.WorksheetRow{
					WorksheetID: worksheetID,
					Position:    i + 1,
					Cells:       encoded,
				})
			}
			if err := tx.CreateInBatches(&records, rowBatchSize).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Worksheet{}).Where("id = ?", worksheetID).Select("revision").Scan(&revision).Error
	})
	if err != nil {
		return 0, err
	}
	return revision, nil
}

func (r *spreadsheetRepository) AppendRow(ctx context.Context, worksheetID uint, cells []string) (int64, error) {
	encoded, err := encodeCells(cells)
	if err != nil {
		return 0, err
	}

	var revision int64
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Worksheet{}).
			Where("id = ?", worksheetID).
			Update("revision", gorm.Expr("revision + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var last int
		if err := tx.Model(&models.WorksheetRow{}).
			Where("worksheet_id = ?", worksheetID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last).Error; err != nil {
			return err
		}

		row := models.WorksheetRow{WorksheetID: worksheetID, Position: last + 1, Cells: encoded}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		return tx.Model(&models.Worksheet{}).Where("id = ?", worksheetID).Select("revision").Scan(&revision).Error
	})
	if err != nil {
		return 0, err
	}
	return revision, nil
}

// DecodeCells unpacks a JSON cell array stored on a worksheet or row.
func DecodeCells(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var cells []string
	if err := json.Unmarshal(raw, &cells); err != nil {
		return nil, fmt.Errorf("decode cells: %w", err)
	}
	return cells, nil
}

func encodeCells(cells []string) (datatypes.JSON, error) {
	if cells == nil {
		cells = []string{}
	}
	payload, err := json.Marshal(cells)
	if err != nil {
		return nil, fmt.Errorf("encode cells: %w", err)
	}
	return datatypes.JSON(payload), nil
}
