package service

import (
	"errors"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
)

var (
	// ErrForbidden indicates the command needs an admin session.
	ErrForbidden = errors.New("admin session required")
	// ErrStudentNotFound indicates no student matches the given key.
	ErrStudentNotFound = errors.New("student not found")
	// ErrStudentExists indicates another student already uses the name.
	ErrStudentExists = errors.New("student already exists")
	// ErrStudentFrozen indicates a lesson was consumed for a frozen student.
	ErrStudentFrozen = models.ErrStudentFrozen
	// ErrInvalidTransition indicates a status change the lifecycle forbids.
	ErrInvalidTransition = models.ErrInvalidTransition
	// ErrInvalidAmount indicates a missing, zero or negative amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInvalidScheduleCell indicates an hour or weekday outside the schedule grid.
	ErrInvalidScheduleCell = errors.New("schedule cell does not exist")
	// ErrTableUnavailable indicates the store could not be read, so a write was refused.
	ErrTableUnavailable = errors.New("table unavailable")
	// ErrInvalidPassphrase indicates the admin passphrase did not match.
	ErrInvalidPassphrase = errors.New("invalid passphrase")
)

// ErrInvalidName indicates a student name that is empty once markup and spaces are removed.
var ErrInvalidName = errors.New("student name is required")
