package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

const defaultPackageNote = "Package"

// StudentService runs the student commands and builds the student views.
type StudentService interface {
	List(ctx context.Context, actor Actor) (dto.StudentListResponse, error)
	Get(ctx context.Context, actor Actor, key string) (dto.StudentDetailResponse, error)
	Create(ctx context.Context, actor Actor, req dto.StudentCreateRequest) (models.Student, error)
	ConsumeLesson(ctx context.Context, actor Actor, key string) (dto.LessonResponse, error)
	RestoreLesson(ctx context.Context, actor Actor, key string) (models.Student, error)
	AddPackage(ctx context.Context, actor Actor, key string, req dto.PackageRequest) (models.Student, error)
	RecordPayment(ctx context.Context, actor Actor, key string, req dto.PaymentRequest) (models.Student, error)
	ChangeStatus(ctx context.Context, actor Actor, key string, req dto.StatusRequest) (models.Student, error)
	Update(ctx context.Context, actor Actor, key string, req dto.StudentUpdateRequest) (models.Student, error)
	Delete(ctx context.Context, actor Actor, key string) error
}

type studentService struct {
	tables    TableService
	activity  ActivityRecorder
	ledger    LedgerRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	now       Clock
	logger    zerolog.Logger
}

// NewStudentService constructs the student command service.
func NewStudentService(tables TableService, activity ActivityRecorder, ledger LedgerRecorder, validator *validator.Validate, clock Clock, logger zerolog.Logger) StudentService {
	return &studentService{
		tables:    tables,
		activity:  activity,
		ledger:    ledger,
		validator: validator,
		sanitizer: bluemonday.StrictPolicy(),
		now:       clock,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context, actor Actor) (dto.StudentListResponse, error) {
	table := s.tables.Load(ctx, sheets.StudentsSchema)
	students := studentsFromTable(table)

	full := actor.IsAdmin()
	items := make([]dto.StudentView, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentView(student, full))
	}

	resp := dto.StudentListResponse{Items: items, Degraded: table.Degraded}
	if full {
		resp.Warnings = table.Warnings
	}
	return resp, nil
}

func (s *studentService) Get(ctx context.Context, actor Actor, key string) (dto.StudentDetailResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return dto.StudentDetailResponse{}, err
	}

	table := s.tables.Load(ctx, sheets.StudentsSchema)
	students := studentsFromTable(table)
	idx := findStudent(students, key)
	if idx < 0 {
		if table.Degraded {
			return dto.StudentDetailResponse{}, ErrTableUnavailable
		}
		return dto.StudentDetailResponse{}, ErrStudentNotFound
	}
	student := students[idx]

	logs := s.tables.Load(ctx, sheets.ActivitySchema)
	ledger := s.tables.Load(ctx, sheets.LedgerSchema)

	warnings := make([]sheets.Warning, 0, len(table.Warnings)+len(ledger.Warnings))
	warnings = append(warnings, table.Warnings...)
	warnings = append(warnings, ledger.Warnings...)

	return dto.StudentDetailResponse{
		Student:  student,
		Level:    CreditLevel(student.Remaining),
		Timeline: StudentTimeline(student, activityFromTable(logs), ledgerFromTable(ledger)),
		Warnings: warnings,
	}, nil
}

func (s *studentService) Create(ctx context.Context, actor Actor, req dto.StudentCreateRequest) (models.Student, error) {
	if err := requireAdmin(actor); err != nil {
		return models.Student{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, err
	}
	if req.Amount.IsNegative() {
		return models.Student{}, ErrInvalidAmount
	}

	name := cleanText(s.sanitizer, req.Name)
	if name == "" {
		return models.Student{}, ErrInvalidName
	}

	table := s.tables.Load(ctx, sheets.StudentsSchema)
	if table.Degraded {
		return models.Student{}, ErrTableUnavailable
	}
	students := studentsFromTable(table)
	for _, existing := range students {
		if models.SameName(existing.Name, name) {
			return models.Student{}, ErrStudentExists
		}
	}

	student := models.Student{
		ID:           uuid.NewString(),
		Name:         name,
		Package:      req.Package,
		Remaining:    req.Package,
		LastActivity: sheets.Missing,
		Status:       models.StudentStatusActive,
		Payment:      models.PaymentUnpaid,
		Notes:        cleanText(s.sanitizer, req.Notes),
	}
	if req.Package == 0 {
		student.Status = models.StudentStatusFinished
	}
	if req.Paid {
		student.Payment = models.PaymentPaid
	}

	students = append(students, student)
	if err := s.tables.Replace(ctx, sheets.StudentsSchema, table, studentRows(students)); err != nil {
		return models.Student{}, err
	}

	if req.Paid && req.Amount.IsPositive() {
		if err := s.ledger.Record(ctx, s.income(student, req.Amount, defaultPackageNote)); err != nil {
			return student, fmt.Errorf("record package payment: %w", err)
		}
	}
	s.audit(ctx, student, models.ActionStudentAdded, fmt.Sprintf("Package: %d", student.Package))

	s.logger.Info().Str("student_id", student.ID).Int("package", student.Package).Msg("student created")
	return student, nil
}

func (s *studentService) ConsumeLesson(ctx context.Context, actor Actor, key string) (dto.LessonResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return dto.LessonResponse{}, err
	}

	at := s.now().Format(lastActivityLayout)
	student, changed, err := s.mutate(ctx, key, func(student *models.Student) (bool, error) {
		return student.Consume(at)
	})
	if err != nil {
		return dto.LessonResponse{}, err
	}
	if !changed {
		return dto.LessonResponse{Student: student, Consumed: false}, nil
	}

	s.audit(ctx, student, models.ActionLessonConsumed, fmt.Sprintf("Remaining: %d", student.Remaining))
	return dto.LessonResponse{Student: student, Consumed: true}, nil
}

func (s *studentService) RestoreLesson(ctx context.Context, actor Actor, key string) (models.Student, error) {
	if err := requireAdmin(actor); err != nil {
		return models.Student{}, err
	}

	at := s.now().Format(lastActivityLayout)
	student, _, err := s.mutate(ctx, key, func(student *models.Student) (bool, error) {
		student.Restore(at)
		return true, nil
	})
	if err != nil {
		return models.Student{}, err
	}

	s.audit(ctx, student, models.ActionLessonRestored, fmt.Sprintf("Remaining: %d", student.Remaining))
	return student, nil
}

func (s *studentService) AddPackage(ctx context.Context, actor Actor, key string, req dto.PackageRequest) (models.Student, error) {
	if err := requireAdmin(actor); err != nil {
		return models.Student{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, err
	}
	if req.Amount.IsNegative() {
		return models.Student{}, ErrInvalidAmount
	}

	at := s.now().Format(lastActivityLayout)
	student, _, err := s.mutate(ctx, key, func(student *models.Student) (bool, error) {
		student.AddCredits(req.Credits, at)
		if req.Paid {
			student.Payment = models.PaymentPaid
		} else {
			student.Payment = models.PaymentUnpaid
		}
		return true, nil
	})
	if err != nil {
		return models.Student{}, err
	}

	if req.Paid && req.Amount.IsPositive() {
		note := cleanText(s.sanitizer, req.Note)
		if note == "" {
			note = defaultPackageNote
		}
		if err := s.ledger.Record(ctx, s.income(student, req.Amount, note)); err != nil {
			return student, fmt.Errorf("record package payment: %w", err)
		}
	}

	s.audit(ctx, student, models.ActionPackageAdded, fmt.Sprintf("Credits: +%d, Remaining: %d", req.Credits, student.Remaining))
	return student, nil
}

func (s *studentService) RecordPayment(ctx context.Context, actor Actor, key string, req dto.PaymentRequest) (models.Student, error) {
	if err := requireAdmin(actor); err != nil {
		return models.Student{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, err
	}
	if !req.Amount.IsPositive() {
		return models.Student{}, ErrInvalidAmount
	}

	student, _, err := s.mutate(ctx, key, func(student *models.Student) (bool, error) {
		student.Payment = models.PaymentPaid
		return true, nil
	})
	if err != nil {
		return models.Student{}, err
	}

	note := cleanText(s.sanitizer, req.Note)
	if err := s.ledger.Record(ctx, s.income(student, req.Amount, note)); err != nil {
		return student, fmt.Errorf("record payment: %w", err)
	}

	s.audit(ctx, student, models.ActionPayment, fmt.Sprintf("Amount: %s", req.Amount.StringFixed(2)))
	return student, nil
}

func (s *studentService) ChangeStatus(ctx context.Context, actor Actor, key string, req dto.StatusRequest) (models.Student, error) {
	if err := requireAdmin(actor); err != nil {
		return models.Student{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, err
	}

	var target models.StudentStatus
	switch req.Action {
	case dto.StatusActionFreeze:
		target = models.StudentStatusFrozen
	case dto.StatusActionUnfreeze, dto.StatusActionReactivate:
		target = models.StudentStatusActive
	}

	var previous models.StudentStatus
	student, _, err := s.mutate(ctx, key, func(student *models.Student) (bool, error) {
		previous = student.Status
		if req.Action == dto.StatusActionUnfreeze && previous != models.StudentStatusFrozen {
			return false, ErrInvalidTransition
		}
		if req.Action == dto.StatusActionReactivate && previous != models.StudentStatusFinished {
			return false, ErrInvalidTransition
		}
		if err := student.Transition(target); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return models.Student{}, err
	}

	s.audit(ctx, student, models.ActionStatusChanged, fmt.Sprintf("%s -> %s", previous, student.Status))
	return student, nil
}

func (s *studentService) Update(ctx context.Context, actor Actor, key string, req dto.StudentUpdateRequest) (models.Student, error) {
	if err := requireAdmin(actor); err != nil {
		return models.Student{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, err
	}

	var rename string
	if req.Name != nil {
		rename = cleanText(s.sanitizer, *req.Name)
		if rename == "" {
			return models.Student{}, ErrInvalidName
		}
	}

	table := s.tables.Load(ctx, sheets.StudentsSchema)
	if table.Degraded {
		return models.Student{}, ErrTableUnavailable
	}
	students := studentsFromTable(table)
	idx := findStudent(students, key)
	if idx < 0 {
		return models.Student{}, ErrStudentNotFound
	}

	student := &students[idx]
	changes := make([]string, 0, 3)
	if rename != "" && rename != student.Name {
		for i, other := range students {
			if i != idx && models.SameName(other.Name, rename) {
				return models.Student{}, ErrStudentExists
			}
		}
		changes = append(changes, fmt.Sprintf("Name: %s -> %s", student.Name, rename))
		student.Name = rename
	}
	if req.Notes != nil {
		student.Notes = cleanText(s.sanitizer, *req.Notes)
		changes = append(changes, "Notes")
	}
	if req.Payment != nil && models.PaymentStatus(*req.Payment) != student.Payment {
		changes = append(changes, fmt.Sprintf("Payment: %s -> %s", student.Payment, *req.Payment))
		student.Payment = models.PaymentStatus(*req.Payment)
	}
	if len(changes) == 0 {
		return *student, nil
	}

	if err := s.tables.Replace(ctx, sheets.StudentsSchema, table, studentRows(students)); err != nil {
		return models.Student{}, err
	}

	s.audit(ctx, *student, models.ActionProfileUpdated, strings.Join(changes, ", "))
	return *student, nil
}

func (s *studentService) Delete(ctx context.Context, actor Actor, key string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	table := s.tables.Load(ctx, sheets.StudentsSchema)
	if table.Degraded {
		return ErrTableUnavailable
	}
	students := studentsFromTable(table)
	idx := findStudent(students, key)
	if idx < 0 {
		return ErrStudentNotFound
	}
	removed := students[idx]

	remaining := make([]models.Student, 0, len(students)-1)
	remaining = append(remaining, students[:idx]...)
	remaining = append(remaining, students[idx+1:]...)

	if err := s.tables.Replace(ctx, sheets.StudentsSchema, table, studentRows(remaining)); err != nil {
		return err
	}

	s.audit(ctx, removed, models.ActionStudentDeleted, fmt.Sprintf("Remaining: %d", removed.Remaining))
	return nil
}

// mutate applies change to the addressed student and writes the table back
// at the revision it was read. A change reporting false skips the write.
func (s *studentService) mutate(ctx context.Context, key string, change func(*models.Student) (bool, error)) (models.Student, bool, error) {
	table := s.tables.Load(ctx, sheets.StudentsSchema)
	if table.Degraded {
		return models.Student{}, false, ErrTableUnavailable
	}

	students := studentsFromTable(table)
	idx := findStudent(students, key)
	if idx < 0 {
		return models.Student{}, false, ErrStudentNotFound
	}

	changed, err := change(&students[idx])
	if err != nil {
		return models.Student{}, false, err
	}
	if !changed {
		return students[idx], false, nil
	}

	if err := s.tables.Replace(ctx, sheets.StudentsSchema, table, studentRows(students)); err != nil {
		return models.Student{}, false, err
	}
	return students[idx], true, nil
}

func (s *studentService) income(student models.Student, amount decimal.Decimal, note string) models.LedgerEntry {
	now := s.now()
	return models.LedgerEntry{
		Date:      now.Format(ledgerDateLayout),
		Month:     now.Format(ledgerMonthLayout),
		Student:   student.Name,
		StudentID: student.ID,
		Amount:    amount,
		Note:      orMissing(note),
		Type:      models.LedgerIncome,
	}
}

// audit appends a log row; failures are logged and never fail the command.
func (s *studentService) audit(ctx context.Context, student models.Student, action, detail string) {
	now := s.now()
	entry := models.ActivityEntry{
		Date:      now.Format(logDateLayout),
		Time:      now.Format(logTimeLayout),
		Student:   student.Name,
		StudentID: student.ID,
		Action:    action,
		Detail:    detail,
	}
	if err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("student_id", student.ID).Str("action", action).Msg("activity log append failed")
	}
}

func findStudent(students []models.Student, key string) int {
	for i, student := range students {
		if student.ID != "" && student.ID == key {
			return i
		}
	}
	for i, student := range students {
		if student.Matches(key) {
			return i
		}
	}
	return -1
}

func studentRows(students []models.Student) [][]string {
	rows := make([][]string, 0, len(students))
	for _, student := range students {
		rows = append(rows, studentRecord(student))
	}
	return rows
}
