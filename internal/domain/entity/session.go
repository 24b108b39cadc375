package entity

import "time"

// User is the backend's view of the signed-in account.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Session binds a storefront session id to a backend bearer token.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	User      *User     `json:"user,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the token expiry has passed at now.
// A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionEventType names a session transition.
type SessionEventType string

const (
	SessionLoggedIn   SessionEventType = "logged_in"
	SessionRegistered SessionEventType = "registered"
	SessionLoggedOut  SessionEventType = "logged_out"
	SessionExpired    SessionEventType = "expired"
)

// SessionEvent is delivered to session subscribers.
type SessionEvent struct {
	Type      SessionEventType
	SessionID string
	User      *User
}
