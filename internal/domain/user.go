package domain

import "time"

// User represents a registered account. Email and Username are each unique
// across all users.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
