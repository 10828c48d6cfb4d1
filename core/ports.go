package core

import "time"

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS
// ============================================

// UserRepository supplies user records. Implementations own secure
// credential comparison (hashed-password matching); the core never sees
// a password hash.
type UserRepository interface {
	// FindByCredentials returns the matching user, or (nil, nil) when the
	// email is unknown or the password does not match. The two cases are
	// deliberately indistinguishable.
	FindByCredentials(email, password string) (*User, error)

	// FindByID returns the user with the given id, or (nil, nil) when no
	// such user exists.
	FindByID(id string) (*User, error)
}

// SessionStore is the token-hash keyed session table. It is the only
// shared mutable resource in the core and must tolerate concurrent
// access across independent keys.
type SessionStore interface {
	Put(tokenHash string, session *Session) error

	// Get returns ErrSessionNotFound for an absent key.
	Get(tokenHash string) (*Session, error)

	// Delete is idempotent - deleting an absent key is not an error.
	Delete(tokenHash string) error
}

// ============================================
// CACHE PORT
// ============================================

// Cache is an optional read-through cache in front of the SessionStore.
type Cache interface {
	Get(tokenHash string) (*Session, error)
	Set(tokenHash string, session *Session) error
	Delete(tokenHash string) error
	Clear() error
}

// CacheWithStats extends Cache with statistics tracking
type CacheWithStats interface {
	Cache
	Stats() CacheStats
}

// ============================================
// CAPABILITY PORTS
// ============================================

// TokenSource produces opaque session tokens. Injected so tests can
// supply deterministic tokens; the default reads crypto/rand.
type TokenSource interface {
	Token() (string, error)
}

// Clock supplies the current time. Nil means time.Now.
type Clock func() time.Time

// ============================================
// AUTH HANDLER (for HTTP adapters)
// ============================================

// AuthHandler provides authentication operations for HTTP adapters.
type AuthHandler interface {
	Login(creds Credentials) (*LoginResult, error)
	Logout(token string) error

	// CurrentUser resolves a carried token to an AuthResult. The error
	// return is infrastructure failure only; a bad token is data, not an
	// error.
	CurrentUser(token string) (AuthResult, error)
}

// ============================================
// HTTP PORT
// ============================================

type HTTPAdapter interface {
	RegisterRoutes(handler AuthHandler, basePath string) error
}
