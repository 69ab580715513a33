package models

import (
	"errors"
	"strings"
)

// StudentStatus is the lifecycle state of a student.
type StudentStatus string

// PaymentStatus tells whether the current package has been paid for.
type PaymentStatus string

const (
	StudentStatusActive   StudentStatus = "Active"
	StudentStatusFrozen   StudentStatus = "Frozen"
	StudentStatusFinished StudentStatus = "Finished"

	PaymentPaid   PaymentStatus = "Paid"
	PaymentUnpaid PaymentStatus = "Unpaid"
)

var (
	// ErrStudentFrozen is returned when a lesson is consumed for a frozen student.
	ErrStudentFrozen = errors.New("student is frozen")
	// ErrInvalidTransition is returned for status changes the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Student is one enrolled person and their lesson-credit balance.
type Student struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Package      int           `json:"package"`
	Remaining    int           `json:"remaining"`
	LastActivity string        `json:"last_activity"`
	Status       StudentStatus `json:"status"`
	Payment      PaymentStatus `json:"payment"`
	Notes        string        `json:"notes"`
}

// Matches reports whether key addresses this student, by ID or by exact name.
func (s Student) Matches(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	if s.ID != "" && s.ID == key {
		return true
	}
	return s.Name == key
}

// SameName compares display names the way uniqueness is enforced.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ParseStudentStatus reads a stored status. Blank, missing or unknown values
// come from rows written before the Status column existed; they count as
// Active while credits remain and Finished otherwise.
func ParseStudentStatus(value string, remaining int) StudentStatus {
	status := StudentStatus(strings.TrimSpace(value))
	switch status {
	case StudentStatusActive, StudentStatusFrozen, StudentStatusFinished:
		return status
	}
	if remaining > 0 {
		return StudentStatusActive
	}
	return StudentStatusFinished
}

// Consume takes one credit. It returns false and leaves the student untouched
// when no credit is left.
func (s *Student) Consume(at string) (bool, error) {
	if s.Remaining <= 0 {
		return false, nil
	}
	if s.Status == StudentStatusFrozen {
		return false, ErrStudentFrozen
	}

	s.Remaining--
	s.LastActivity = at
	if s.Remaining == 0 && s.Status == StudentStatusActive {
		s.Status = StudentStatusFinished
	}
	return true, nil
}

// Restore gives back one credit, undoing a mistaken consumption.
func (s *Student) Restore(at string) {
	s.Remaining++
	s.LastActivity = at
	if s.Status == StudentStatusFinished {
		s.Status = StudentStatusActive
	}
}

// AddCredits records a newly purchased package. Finished students become
// Active again; frozen students stay frozen.
func (s *Student) AddCredits(credits int, at string) {
	if credits <= 0 {
		return
	}
	s.Remaining += credits
	s.Package = credits
	s.LastActivity = at
	if s.Status == StudentStatusFinished || s.Status == "" {
		s.Status = StudentStatusActive
	}
}

// Transition applies an explicit status change.
func (s *Student) Transition(to StudentStatus) error {
	switch {
	case s.Status == StudentStatusActive && to == StudentStatusFrozen:
	case s.Status == StudentStatusFrozen && to == StudentStatusActive:
	case s.Status == StudentStatusFinished && to == StudentStatusActive:
	default:
		return ErrInvalidTransition
	}
	s.Status = to
	return nil
}

// IsActive reports whether the student shows up on the court roster.
func (s Student) IsActive() bool {
	return s.Status == StudentStatusActive
}
