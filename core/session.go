package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/ddalisay/tanod/pkg/crypto"
)

// SessionConfig configures the session layer.
type SessionConfig struct {
	// TTL is the lifetime of newly issued sessions.
	TTL time.Duration

	// Tokens supplies session tokens. Nil means crypto/rand.
	Tokens TokenSource

	// Now supplies the current time. Nil means time.Now.
	Now Clock
}

// DefaultSessionConfig returns the config applied when none is given.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		TTL: 24 * time.Hour,
	}
}

// SessionManager owns session issuance, verification and destruction.
// The store is keyed by token hash; the raw token is returned once at
// issue time and never kept server-side.
type SessionManager struct {
	ttl    time.Duration
	store  SessionStore
	cache  Cache // optional, nil when caching is disabled
	tokens TokenSource
	now    Clock
	ids    *crypto.NanoIDGenerator
}

// IssueResult pairs a stored session with the raw token handed to the
// client.
type IssueResult struct {
	Session *Session `json:"session"`
	Token   string   `json:"token"`
}

func NewSessionManager(config SessionConfig, store SessionStore, cache Cache) *SessionManager {
	if config.TTL <= 0 {
		config.TTL = DefaultSessionConfig().TTL
	}
	if config.Tokens == nil {
		config.Tokens = crypto.RandomTokenSource{}
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	ids, _ := crypto.NewNanoID("")

	return &SessionManager{
		ttl:    config.TTL,
		store:  store,
		cache:  cache,
		tokens: config.Tokens,
		now:    config.Now,
		ids:    ids,
	}
}

// TTL returns the configured session lifetime.
func (sm *SessionManager) TTL() time.Duration { return sm.ttl }

// Issue creates a session for userID expiring after ttl. A non-positive
// ttl produces an already-expired session; the next Verify reports it
// expired and removes it.
func (sm *SessionManager) Issue(userID string, ttl time.Duration) (*IssueResult, error) {
	token, err := sm.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	id, err := sm.ids.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := sm.now()
	session := &Session{
		ID:        id,
		UserID:    userID,
		TokenHash: crypto.HashToken(token),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	if err := sm.store.Put(session.TokenHash, session); err != nil {
		return nil, &StoreError{Op: "put", Err: err}
	}

	// Caching is best-effort; a cache failure never fails the login.
	if sm.cache != nil {
		_ = sm.cache.Set(session.TokenHash, session)
	}

	return &IssueResult{Session: session, Token: token}, nil
}

// Verify resolves a raw token to its session.
//
// Failure modes: ErrNoToken for an empty token, ErrSessionNotFound for
// an unknown one, ErrSessionExpired for a stale one (the stale session
// is removed as a side effect, so a later Verify of the same token sees
// ErrSessionNotFound), and *StoreError when the store itself fails.
func (sm *SessionManager) Verify(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	tokenHash := crypto.HashToken(token)

	if sm.cache != nil {
		if session, err := sm.cache.Get(tokenHash); err == nil && session != nil {
			if !session.Expired(sm.now()) {
				return session, nil
			}
			// Stale cache entry; drop it and fall through to the store so
			// lazy expiry removes the backing record too.
			_ = sm.cache.Delete(tokenHash)
		}
	}

	session, err := sm.store.Get(tokenHash)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, &StoreError{Op: "get", Err: err}
	}

	if session.Expired(sm.now()) {
		// Lazy expiry. A concurrent Verify racing this delete just sees
		// not-found, which is the same outcome, not an error.
		_ = sm.store.Delete(tokenHash)
		if sm.cache != nil {
			_ = sm.cache.Delete(tokenHash)
		}
		return nil, ErrSessionExpired
	}

	if sm.cache != nil {
		_ = sm.cache.Set(tokenHash, session)
	}

	return session, nil
}

// Destroy removes the session matching the token. Idempotent -
// destroying an absent or empty token is not an error.
func (sm *SessionManager) Destroy(token string) error {
	if token == "" {
		return nil
	}

	tokenHash := crypto.HashToken(token)

	if sm.cache != nil {
		_ = sm.cache.Delete(tokenHash)
	}

	if err := sm.store.Delete(tokenHash); err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	return nil
}
