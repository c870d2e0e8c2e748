package domain

import "time"

// User represents a registered user of the application.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	// Refresh token state. Only the hash is stored; the raw token is
	// returned to the client once and never persisted.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
}
