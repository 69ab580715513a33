package dto

import (
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

// CourtCard is an active student on the court panel.
type CourtCard struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
	Payment   string `json:"payment"`
	Level     string `json:"level"`
	Progress  int    `json:"progress"`
}

// CourtResponse is the court panel: who is active and what happened last.
type CourtResponse struct {
	Roster   []CourtCard            `json:"roster"`
	Recent   []models.ActivityEntry `json:"recent"`
	Degraded bool                   `json:"degraded"`
	Warnings []sheets.Warning       `json:"warnings,omitempty"`
}
