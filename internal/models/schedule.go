package models

// ScheduleSlot is one hourly row of the weekly schedule, keyed by weekday column.
type ScheduleSlot struct {
	Hour string            `json:"hour"`
	Days map[string]string `json:"days"`
}
