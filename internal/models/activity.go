package models

// Activity labels written to the activity log.
const (
	ActionStudentAdded   = "Student Added"
	ActionLessonConsumed = "Lesson Consumed"
	ActionLessonRestored = "Lesson Restored"
	ActionPackageAdded   = "Package Added"
	ActionPayment        = "Payment"
	ActionStatusChanged  = "Status Changed"
	ActionProfileUpdated = "Profile Updated"
	ActionStudentDeleted = "Student Deleted"
	ActionGuestLesson    = "Guest Lesson"
)

// ActivityEntry is one append-only lesson or administrative event.
type ActivityEntry struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Student   string `json:"student"`
	StudentID string `json:"student_id"`
	Action    string `json:"action"`
	Detail    string `json:"detail"`
}
