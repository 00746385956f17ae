package domain

import "time"

// RegistrationSession is the anonymous identity anchoring a signup before any
// account exists: a server-issued token, its expiry, and the plan selected
// when the token was issued. The token is opaque to the client.
type RegistrationSession struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Plan      PlanSummary `json:"plan"`
}

// Expired reports whether the session's token has passed its expiry as of
// now. The backend remains the authority on validity; this is only a local
// fast-path check.
func (s RegistrationSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Identity is the person starting the signup: the future organization owner.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
