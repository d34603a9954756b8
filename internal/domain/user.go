package domain

import "time"

// User represents an authenticated user of the system. PasswordHash is only
// set on records exchanged with the user store; it is stripped before a user
// leaves the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
