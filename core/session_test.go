package core

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ddalisay/tanod/pkg/crypto"
)

func newTestManager(store SessionStore, cache Cache, ttl time.Duration) *SessionManager {
	return NewSessionManager(SessionConfig{TTL: ttl}, store, cache)
}

// Requirement: Issue stores a session keyed by token hash with
// expiresAt strictly after issuedAt for a positive ttl.
func TestSessionManager_Issue(t *testing.T) {
	store := NewFakeSessionStore()
	sm := newTestManager(store, nil, time.Hour)

	issued, err := sm.Issue("u1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if issued.Token == "" {
		t.Fatal("Issue() should return a raw token")
	}
	if issued.Session.UserID != "u1" {
		t.Errorf("Session.UserID = %q, want %q", issued.Session.UserID, "u1")
	}
	if !issued.Session.ExpiresAt.After(issued.Session.IssuedAt) {
		t.Error("Session.ExpiresAt should be strictly after IssuedAt")
	}
	if issued.Session.TokenHash != crypto.HashToken(issued.Token) {
		t.Error("Session.TokenHash should be the hash of the raw token")
	}
	if _, err := store.Get(issued.Session.TokenHash); err != nil {
		t.Errorf("session should be stored under its token hash: %v", err)
	}
}

// Requirement: a storage failure during issuance surfaces as a
// *StoreError and is not retried.
func TestSessionManager_Issue_StoreFailure(t *testing.T) {
	store := NewFakeSessionStore()
	store.putErr = errors.New("connection refused")
	sm := newTestManager(store, nil, time.Hour)

	_, err := sm.Issue("u1", time.Hour)

	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("Issue() error = %v, want *StoreError", err)
	}
	if storeErr.Op != "put" {
		t.Errorf("StoreError.Op = %q, want %q", storeErr.Op, "put")
	}
}

// Requirement: verifying a still-valid token twice returns the same
// session both times (verification is idempotent).
func TestSessionManager_Verify_Idempotent(t *testing.T) {
	store := NewFakeSessionStore()
	sm := newTestManager(store, nil, time.Hour)

	issued, err := sm.Issue("u1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	first, err := sm.Verify(issued.Token)
	if err != nil {
		t.Fatalf("first Verify() error = %v", err)
	}
	second, err := sm.Verify(issued.Token)
	if err != nil {
		t.Fatalf("second Verify() error = %v", err)
	}

	if first.ID != second.ID || first.UserID != second.UserID {
		t.Error("repeated Verify() should resolve to the same session")
	}
}

// Requirement: verification failure modes - no token, unknown token,
// expired token.
func TestSessionManager_Verify_Failures(t *testing.T) {
	tests := []struct {
		name    string
		token   func(t *testing.T, sm *SessionManager) string
		wantErr error
	}{
		{
			name:    "empty token",
			token:   func(*testing.T, *SessionManager) string { return "" },
			wantErr: ErrNoToken,
		},
		{
			name:    "unknown token",
			token:   func(*testing.T, *SessionManager) string { return "never-issued" },
			wantErr: ErrSessionNotFound,
		},
		{
			name: "expired token",
			token: func(t *testing.T, sm *SessionManager) string {
				issued, err := sm.Issue("u1", 0) // expires immediately
				if err != nil {
					t.Fatalf("Issue() error = %v", err)
				}
				return issued.Token
			},
			wantErr: ErrSessionExpired,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			sm := newTestManager(NewFakeSessionStore(), nil, time.Hour)

			_, err := sm.Verify(test.token(t, sm))

			if !errors.Is(err, test.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

// Requirement: lazy expiry - the first verify of an expired token
// reports expired and removes the session; the second sees not-found.
func TestSessionManager_Verify_LazyExpiry(t *testing.T) {
	store := NewFakeSessionStore()
	sm := newTestManager(store, nil, time.Hour)

	issued, err := sm.Issue("u1", 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := sm.Verify(issued.Token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("first Verify() error = %v, want ErrSessionExpired", err)
	}
	if store.Len() != 0 {
		t.Error("expired session should have been removed from the store")
	}
	if _, err := sm.Verify(issued.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Verify() error = %v, want ErrSessionNotFound", err)
	}
}

// Requirement: an expired entry served from cache is dropped from both
// cache and store, and never observably reusable.
func TestSessionManager_Verify_ExpiredCacheEntry(t *testing.T) {
	store := NewFakeSessionStore()
	cache := NewInMemoryCache(CacheConfig{TTL: time.Minute, MaxSize: 10})
	sm := newTestManager(store, cache, time.Hour)

	issued, err := sm.Issue("u1", 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := sm.Verify(issued.Token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Verify() error = %v, want ErrSessionExpired", err)
	}
	if store.Len() != 0 {
		t.Error("expired session should be gone from the store")
	}
	if _, err := cache.Get(issued.Session.TokenHash); !errors.Is(err, ErrCacheNotFound) {
		t.Error("expired session should be gone from the cache")
	}
}

// Requirement: deterministic tokens can be injected for tests.
func TestSessionManager_InjectedTokenSource(t *testing.T) {
	store := NewFakeSessionStore()
	tokens := &stubTokenSource{tokens: []string{"fixed-token-1"}}
	sm := NewSessionManager(SessionConfig{TTL: time.Hour, Tokens: tokens}, store, nil)

	issued, err := sm.Issue("u1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if issued.Token != "fixed-token-1" {
		t.Errorf("Issue() token = %q, want injected %q", issued.Token, "fixed-token-1")
	}
}

// Requirement: a frozen clock controls expiry deterministically.
func TestSessionManager_InjectedClock(t *testing.T) {
	store := NewFakeSessionStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	sm := NewSessionManager(SessionConfig{TTL: time.Hour, Now: clock}, store, nil)

	issued, err := sm.Issue("u1", 30*time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := sm.Verify(issued.Token); err != nil {
		t.Fatalf("Verify() before expiry error = %v", err)
	}

	mu.Lock()
	now = now.Add(30 * time.Minute) // exactly at expiresAt: already expired
	mu.Unlock()

	if _, err := sm.Verify(issued.Token); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Verify() at expiry error = %v, want ErrSessionExpired", err)
	}
}

// Requirement: Destroy is idempotent; destroying an absent or empty
// token is not an error.
func TestSessionManager_Destroy(t *testing.T) {
	store := NewFakeSessionStore()
	sm := newTestManager(store, nil, time.Hour)

	issued, err := sm.Issue("u1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if err := sm.Destroy(issued.Token); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if _, err := sm.Verify(issued.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Verify() after Destroy() error = %v, want ErrSessionNotFound", err)
	}

	if err := sm.Destroy(issued.Token); err != nil {
		t.Errorf("second Destroy() should be a no-op, got %v", err)
	}
	if err := sm.Destroy(""); err != nil {
		t.Errorf("Destroy(\"\") should be a no-op, got %v", err)
	}
}

// Requirement: concurrent issuance for one user yields distinct tokens,
// each independently verifiable until destroyed or expired.
func TestSessionManager_ConcurrentIssue(t *testing.T) {
	store := NewFakeSessionStore()
	sm := newTestManager(store, nil, time.Hour)

	const n = 16
	tokens := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			issued, err := sm.Issue("u1", time.Hour)
			if err != nil {
				t.Errorf("Issue() error = %v", err)
				return
			}
			tokens[i] = issued.Token
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, token := range tokens {
		if token == "" {
			t.Fatal("missing token from concurrent Issue()")
		}
		if seen[token] {
			t.Fatal("concurrent Issue() produced duplicate tokens")
		}
		seen[token] = true

		session, err := sm.Verify(token)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if session.UserID != "u1" {
			t.Errorf("Session.UserID = %q, want %q", session.UserID, "u1")
		}
	}

	// Destroying one leaves the others valid.
	if err := sm.Destroy(tokens[0]); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if _, err := sm.Verify(tokens[0]); err == nil {
		t.Error("destroyed token should no longer verify")
	}
	if _, err := sm.Verify(tokens[1]); err != nil {
		t.Errorf("sibling session should still verify: %v", err)
	}
}
