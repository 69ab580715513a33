package service

import (
	"strings"
	"time"
)

// RoleAdmin is the role carried by sessions opened with the admin passphrase.
const RoleAdmin = "admin"

// Actor is the caller of a command, as established by the session token.
type Actor struct {
	SessionID string
	Role      string
}

// IsAdmin reports whether the actor may run administrative commands.
func (a Actor) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(a.Role), RoleAdmin)
}

func requireAdmin(actor Actor) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// Clock returns the current time in the business timezone.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}
