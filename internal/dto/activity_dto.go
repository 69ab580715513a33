package dto

import (
	"github.com/shopspring/decimal"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
)

// HistoryRequest filters the activity log.
type HistoryRequest struct {
	Student string
	Limit   int
}

// HistoryResponse lists activity entries, newest first.
type HistoryResponse struct {
	Entries  []models.ActivityEntry `json:"entries"`
	Total    int                    `json:"total"`
	Degraded bool                   `json:"degraded"`
}

// GuestLessonRequest records a lesson for an unregistered visitor.
type GuestLessonRequest struct {
	Note   string          `json:"note" validate:"max=500"`
	Amount decimal.Decimal `json:"amount"`
}
