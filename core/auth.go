package core

import (
	"errors"
	"fmt"
)

// AuthService orchestrates the login flow: validate, look up, issue.
type AuthService struct {
	users          UserRepository
	sessions       *SessionManager
	minPasswordLen int
}

// Ensure AuthService implements AuthHandler
var _ AuthHandler = (*AuthService)(nil)

func NewAuthService(users UserRepository, sessions *SessionManager, minPasswordLen int) *AuthService {
	if minPasswordLen <= 0 {
		minPasswordLen = DefaultMinPasswordLen
	}
	return &AuthService{
		users:          users,
		sessions:       sessions,
		minPasswordLen: minPasswordLen,
	}
}

// Login authenticates a credential pair and issues a session.
//
// Exactly one repository read happens per attempt, and a session is
// created only on the success path. Failure is one of *ValidationError,
// ErrInvalidCredentials or *StoreError.
func (s *AuthService) Login(creds Credentials) (*LoginResult, error) {
	if err := ValidateCredentials(creds, s.minPasswordLen); err != nil {
		return nil, err
	}

	user, err := s.users.FindByCredentials(creds.Email, creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		// Unknown email and wrong password produce the same error.
		return nil, ErrInvalidCredentials
	}

	issued, err := s.sessions.Issue(user.ID, s.sessions.TTL())
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:    user,
		Session: issued.Session,
		Token:   issued.Token,
	}, nil
}

// Logout destroys the session matching the token. Idempotent.
func (s *AuthService) Logout(token string) error {
	return s.sessions.Destroy(token)
}

// CurrentUser resolves a carried token to "who is logged in".
//
// Verification outcomes are data: a missing, unknown or expired token
// yields an unauthenticated result, not an error. The error return is
// reserved for infrastructure failure (store or repository), which the
// transport layer reports as a server error.
func (s *AuthService) CurrentUser(token string) (AuthResult, error) {
	session, err := s.sessions.Verify(token)
	if err != nil {
		var storeErr *StoreError
		switch {
		case errors.As(err, &storeErr):
			return AuthResult{}, err
		case errors.Is(err, ErrNoToken):
			return Unauthenticated(ReasonNoToken), nil
		case errors.Is(err, ErrSessionExpired):
			return Unauthenticated(ReasonExpired), nil
		default:
			return Unauthenticated(ReasonInvalid), nil
		}
	}

	user, err := s.users.FindByID(session.UserID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		// The user was deleted after the session was issued.
		return Unauthenticated(ReasonInvalid), nil
	}

	return Authenticated(user, session), nil
}
