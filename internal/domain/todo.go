package domain

import "time"

// Todo is a single task owned by exactly one user. Titles are unique across
// the whole store, not per user.
type Todo struct {
	ID          int64
	Title       string
	Description string
	IsDone      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      int64
}
