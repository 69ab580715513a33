package models

import (
	"time"

	"gorm.io/datatypes"
)

// Spreadsheet is a named tabular document holding a set of worksheets.
// RevisionFloor is the revision new worksheets start at; it stays above every
// revision a deleted worksheet ever reached.
type Spreadsheet struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	RevisionFloor int64     `gorm:"not null;default:0" json:"revision_floor"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Worksheet is a named table inside a spreadsheet. Header stores the declared
// column names as a JSON array; Revision increases on every write.
type Worksheet struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SpreadsheetID uint           `gorm:"not null;uniqueIndex:idx_worksheet_title" json:"spreadsheet_id"`
	Title         string         `gorm:"size:128;not null;uniqueIndex:idx_worksheet_title" json:"title"`
	Header        datatypes.JSON `gorm:"type:json" json:"header"`
	Revision      int64          `gorm:"not null;default:0" json:"revision"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// WorksheetRow holds the cells of one data row. Position orders rows by insertion.
type WorksheetRow struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WorksheetID uint           `gorm:"not null;index:idx_worksheet_rows_position,priority:1" json:"worksheet_id"`
	Position    int            `gorm:"not null;index:idx_worksheet_rows_position,priority:2" json:"position"`
	Cells       datatypes.JSON `gorm:"type:json" json:"cells"`
}
