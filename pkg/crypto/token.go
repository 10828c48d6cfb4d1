package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
)

const (
	// DefaultTokenBytes is 256 bits of entropy per token.
	DefaultTokenBytes = 32

	// MinTokenBytes is the floor below which token guessing stops being
	// infeasible. 16 bytes = 128 bits.
	MinTokenBytes = 16
)

// RandomTokenSource generates opaque session tokens from crypto/rand,
// base64url encoded. The zero value is ready to use.
type RandomTokenSource struct {
	Bytes int // entropy per token; values below MinTokenBytes are raised to the default
}

// Token returns a fresh opaque token.
func (s RandomTokenSource) Token() (string, error) {
	n := s.Bytes
	if n < MinTokenBytes {
		n = DefaultTokenBytes
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken derives the storage key for a token. Only the hash is ever
// at rest; the raw token exists client-side only.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// VerifyToken checks a raw token against a stored hash in constant time.
func VerifyToken(token, storedHash string) (bool, error) {
	if token == "" || storedHash == "" {
		return false, errors.New("token and hash cannot be empty")
	}

	tokenHash := HashToken(token)

	return subtle.ConstantTimeCompare([]byte(tokenHash), []byte(storedHash)) == 1, nil
}
