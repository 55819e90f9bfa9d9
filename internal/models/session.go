package models

import "time"

// Session is the client-side view of an authenticated session:
// the bearer token handed out by the backend and what the client
// could read out of it without verifying the signature.
type Session struct {
	UserID      string
	AccessToken string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired reports whether the access token is past its expiry.
// A zero ExpiresAt means the token carried no readable expiry and
// is treated as non-expiring; the backend still has the last word.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
