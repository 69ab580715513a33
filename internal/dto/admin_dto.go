package dto

import "time"

// SessionRequest opens an admin session.
type SessionRequest struct {
	Passphrase string `json:"passphrase" validate:"required"`
}

// SessionResponse carries the bearer token for admin routes.
type SessionResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ResetResponse lists the tables recreated by a reset.
type ResetResponse struct {
	Tables []string `json:"tables"`
}
