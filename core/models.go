package core

import "time"

// Credentials is the raw email/password pair supplied on a login attempt.
//
// Transient - it lives only for the duration of the attempt and is
// never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User represents an identity returned by the repository.
//
// The core treats it as immutable once returned.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session represents an active login session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TokenHash string    `json:"-"` // Never expose in JSON (security!)
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at the given time.
// A session whose expiry equals now is already expired.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Reason explains why a verification came back unauthenticated.
type Reason string

const (
	ReasonNoToken Reason = "no_token"
	ReasonExpired Reason = "expired"
	ReasonInvalid Reason = "invalid"
)

// AuthResult is the outcome of verifying a carried token.
//
// Either Authenticated is true and User/Session are set, or it is false
// and Reason says why. The three reasons are for internal logging only;
// clients see a single generic rejection.
type AuthResult struct {
	Authenticated bool     `json:"authenticated"`
	User          *User    `json:"user,omitempty"`
	Session       *Session `json:"session,omitempty"`
	Reason        Reason   `json:"-"`
}

// Authenticated builds a successful AuthResult.
func Authenticated(user *User, session *Session) AuthResult {
	return AuthResult{Authenticated: true, User: user, Session: session}
}

// Unauthenticated builds a failed AuthResult with the given reason.
func Unauthenticated(reason Reason) AuthResult {
	return AuthResult{Reason: reason}
}

// LoginResult contains the authenticated user and their new session.
type LoginResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
	Token   string   `json:"token"` // The raw token (not the hash)
}

// SessionData combines user and session info.
// The model returned to clients by the who-am-I endpoint.
type SessionData struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}
