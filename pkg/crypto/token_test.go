package crypto

import (
	"encoding/base64"
	"testing"
)

// Requirement: tokens carry at least 128 bits of entropy and are
// opaque base64url strings.
func TestRandomTokenSource_Token(t *testing.T) {
	tests := []struct {
		name      string
		bytes     int
		wantBytes int
	}{
		{name: "default", bytes: 0, wantBytes: DefaultTokenBytes},
		{name: "below minimum raised to default", bytes: 8, wantBytes: DefaultTokenBytes},
		{name: "minimum", bytes: MinTokenBytes, wantBytes: MinTokenBytes},
		{name: "custom", bytes: 48, wantBytes: 48},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			source := RandomTokenSource{Bytes: test.bytes}

			token, err := source.Token()
			if err != nil {
				t.Fatalf("Token() error = %v", err)
			}

			decoded, err := base64.RawURLEncoding.DecodeString(token)
			if err != nil {
				t.Fatalf("Token() not base64url: %v", err)
			}
			if len(decoded) != test.wantBytes {
				t.Errorf("Token() carries %d bytes of entropy, want %d", len(decoded), test.wantBytes)
			}
		})
	}
}

// Requirement: consecutive tokens never collide.
func TestRandomTokenSource_Unique(t *testing.T) {
	source := RandomTokenSource{}
	seen := make(map[string]bool)

	for i := 0; i < 256; i++ {
		token, err := source.Token()
		if err != nil {
			t.Fatalf("Token() error = %v", err)
		}
		if seen[token] {
			t.Fatal("Token() produced a duplicate")
		}
		seen[token] = true
	}
}

// Requirement: hashing is deterministic and verification is exact.
func TestHashAndVerifyToken(t *testing.T) {
	token := "some-opaque-token"

	hash := HashToken(token)
	if hash != HashToken(token) {
		t.Fatal("HashToken() must be deterministic")
	}
	if len(hash) != 64 {
		t.Errorf("HashToken() length = %d, want 64 hex chars", len(hash))
	}

	valid, err := VerifyToken(token, hash)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if !valid {
		t.Error("VerifyToken() should accept the matching token")
	}

	valid, err = VerifyToken("other-token", hash)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if valid {
		t.Error("VerifyToken() should reject a different token")
	}

	if _, err := VerifyToken("", hash); err == nil {
		t.Error("VerifyToken() should reject an empty token")
	}
	if _, err := VerifyToken(token, ""); err == nil {
		t.Error("VerifyToken() should reject an empty hash")
	}
}
