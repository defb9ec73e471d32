package auth

import "time"

// Identity is the claim a client presents at login (e.g. {"email": ...}).
// No schema is enforced; it is signed and handed back as-is.
type Identity map[string]any

// Email returns the identity's email field, or "" when absent or not a string
func (i Identity) Email() string {
	email, _ := i["email"].(string)
	return email
}

// SessionData represents the authenticated session context for a request.
// It only exists once a token has been verified.
type SessionData struct {
	Identity  Identity  `json:"identity"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Email is a shorthand for the session identity's email
func (s *SessionData) Email() string {
	return s.Identity.Email()
}
