package dto

import "github.com/rumeysaaltintas35-ui/tenis-app/internal/models"

// ScheduleResponse is the weekly schedule grid.
type ScheduleResponse struct {
	Days     []string              `json:"days"`
	Slots    []models.ScheduleSlot `json:"slots"`
	Degraded bool                  `json:"degraded"`
}

// ScheduleCellRequest sets one cell of the grid.
type ScheduleCellRequest struct {
	Hour  string `json:"hour" validate:"required,len=5"`
	Day   string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Label string `json:"label" validate:"max=120"`
}

// ScheduleReplaceRequest replaces the labels of the whole grid.
type ScheduleReplaceRequest struct {
	Slots []models.ScheduleSlot `json:"slots" validate:"required,min=1"`
}
