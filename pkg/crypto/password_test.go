package crypto

import (
	"strings"
	"testing"
)

func TestArgon2_Hash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "simple", password: "testPassword123"},
		{name: "empty password", password: ""},
		{name: "long password", password: strings.Repeat("a", 128)},
		{name: "unicode", password: "пароль🔐"},
		{name: "special chars", password: "p@ssw0rd!#$%"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			a := NewArgon2()

			hash, err := a.Hash(test.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			if !strings.HasPrefix(hash, "$argon2id$") {
				t.Error("Hash() should start with $argon2id$")
			}
			if len(strings.Split(hash, "$")) != 6 {
				t.Error("Hash() should have 6 $-separated parts")
			}
		})
	}
}

// Requirement: verification accepts the original password and nothing
// else; two hashes of one password differ (random salt).
func TestArgon2_Verify(t *testing.T) {
	a := NewArgon2()
	const password = "SecurePass123!"

	hash, err := a.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	valid, err := a.Verify(password, hash)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !valid {
		t.Error("Verify() should accept the original password")
	}

	valid, err = a.Verify("WrongPass123!", hash)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if valid {
		t.Error("Verify() should reject a wrong password")
	}

	other, err := a.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if other == hash {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestArgon2_VerifyMalformedHash(t *testing.T) {
	a := NewArgon2()

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "wrong part count", hash: "$argon2id$v=19$m=65536"},
		{name: "wrong algorithm", hash: "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if _, err := a.Verify("password", test.hash); err == nil {
				t.Error("Verify() should reject a malformed hash")
			}
		})
	}
}
