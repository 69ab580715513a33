package dto

import (
	"github.com/shopspring/decimal"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

// StudentCreateRequest registers a new student with an initial package.
type StudentCreateRequest struct {
	Name    string          `json:"name" validate:"required,min=1,max=120"`
	Package int             `json:"package" validate:"gte=0,lte=500"`
	Paid    bool            `json:"paid"`
	Amount  decimal.Decimal `json:"amount"`
	Notes   string          `json:"notes" validate:"max=2000"`
}

// StudentUpdateRequest patches profile fields.
type StudentUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=120"`
	Notes   *string `json:"notes" validate:"omitempty,max=2000"`
	Payment *string `json:"payment" validate:"omitempty,oneof=Paid Unpaid"`
}

// PackageRequest adds lesson credits, optionally paid on the spot.
type PackageRequest struct {
	Credits int             `json:"credits" validate:"required,gt=0,lte=500"`
	Paid    bool            `json:"paid"`
	Amount  decimal.Decimal `json:"amount"`
	Note    string          `json:"note" validate:"max=500"`
}

// PaymentRequest records money received from a student.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note" validate:"max=500"`
}

// Status change actions.
const (
	StatusActionFreeze     = "freeze"
	StatusActionUnfreeze   = "unfreeze"
	StatusActionReactivate = "reactivate"
)

// StatusRequest toggles freeze or reactivates a finished student.
type StatusRequest struct {
	Action string `json:"action" validate:"required,oneof=freeze unfreeze reactivate"`
}

// StudentView is a student row as listed. Guests only see name, balance and payment.
type StudentView struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Package      int    `json:"package,omitempty"`
	Remaining    int    `json:"remaining"`
	LastActivity string `json:"last_activity,omitempty"`
	Status       string `json:"status,omitempty"`
	Payment      string `json:"payment"`
	Notes        string `json:"notes,omitempty"`
}

// NewStudentView converts a student; full exposes every column.
func NewStudentView(student models.Student, full bool) StudentView {
	view := StudentView{
		Name:      student.Name,
		Remaining: student.Remaining,
		Payment:   string(student.Payment),
	}
	if full {
		view.ID = student.ID
		view.Package = student.Package
		view.LastActivity = student.LastActivity
		view.Status = string(student.Status)
		view.Notes = student.Notes
	}
	return view
}

// StudentListResponse lists the Students table.
type StudentListResponse struct {
	Items    []StudentView    `json:"items"`
	Degraded bool             `json:"degraded"`
	Warnings []sheets.Warning `json:"warnings,omitempty"`
}

// LessonResponse reports a lesson consumption; Consumed is false for a no-op.
type LessonResponse struct {
	Student  models.Student `json:"student"`
	Consumed bool           `json:"consumed"`
}

// TimelineItem is one row of a student's merged history.
type TimelineItem struct {
	Kind   string           `json:"kind"`
	Date   string           `json:"date"`
	Time   string           `json:"time,omitempty"`
	Label  string           `json:"label"`
	Detail string           `json:"detail"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// Timeline item kinds.
const (
	TimelineActivity = "activity"
	TimelineLedger   = "ledger"
)

// StudentDetailResponse is a student with their history, newest first.
type StudentDetailResponse struct {
	Student  models.Student   `json:"student"`
	Level    string           `json:"level"`
	Timeline []TimelineItem   `json:"timeline"`
	Warnings []sheets.Warning `json:"warnings,omitempty"`
}
