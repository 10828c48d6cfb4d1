package core

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The message must stay identical for the two cases so the
	// response never leaks whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password") // 401
)

// Session errors
var (
	ErrNoToken         = errors.New("no session token supplied")    // 401
	ErrSessionNotFound = errors.New("session not found")            // 401
	ErrSessionExpired  = errors.New("session expired")              // 401
	ErrCacheNotFound   = errors.New("session not found in cache")
)

// Config errors (server-side configuration)
var (
	ErrUserRepositoryRequired = errors.New("user repository is required") // 500
)

// ValidationError reports the first structural rule a credential pair
// violated. Always recoverable by the caller.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Rule)
}

// StoreError wraps a session-store infrastructure failure. Fatal to the
// current request and never retried here; retry policy belongs to the
// caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("session store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
