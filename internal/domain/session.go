package domain

import "time"

// Session binds a browser to an authenticated user until logout or expiry.
// The token is an opaque random value carried in a cookie; all state lives
// server-side.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
