package core

import (
	"fmt"
	"strings"
)

// DefaultMinPasswordLen is the password length floor applied when no
// minimum is configured.
const DefaultMinPasswordLen = 8

// ValidateCredentials checks the structural validity of a credential
// pair before any I/O happens. Email is checked before password and the
// first violated rule wins. The credentials themselves are returned
// unchanged on success (callers keep using their own copy).
func ValidateCredentials(creds Credentials, minPasswordLen int) error {
	if minPasswordLen <= 0 {
		minPasswordLen = DefaultMinPasswordLen
	}

	if err := validateEmail(creds.Email); err != nil {
		return err
	}

	if len(creds.Password) < minPasswordLen {
		return &ValidationError{
			Field: "password",
			Rule:  fmt.Sprintf("must be at least %d characters", minPasswordLen),
		}
	}

	return nil
}

// validateEmail applies the minimal structural pattern: exactly one '@'
// with non-empty local and domain parts. Anything stricter belongs to
// the repository or a mail-verification flow, not here.
func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Rule: "required"}
	}

	local, domain, found := strings.Cut(email, "@")
	if !found || strings.Contains(domain, "@") {
		return &ValidationError{Field: "email", Rule: "must contain exactly one @"}
	}
	if local == "" {
		return &ValidationError{Field: "email", Rule: "local part must not be empty"}
	}
	if domain == "" {
		return &ValidationError{Field: "email", Rule: "domain part must not be empty"}
	}

	return nil
}
