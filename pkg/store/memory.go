// Package store provides session store backends. The memory store is
// the default; adapters/pgx provides a persistent one with the same
// contract.
package store

import (
	"sync"
	"time"

	"github.com/ddalisay/tanod/core"
)

// Memory is an in-process session store keyed by token hash. Entries are
// independently keyed, so one RWMutex over the map is all the
// coordination concurrent logins and verifications need.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

var _ core.SessionStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]*core.Session),
	}
}

func (m *Memory) Put(tokenHash string, session *core.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[tokenHash] = session
	return nil
}

func (m *Memory) Get(tokenHash string) (*core.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[tokenHash]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return session, nil
}

// Delete is idempotent; removing an absent key succeeds.
func (m *Memory) Delete(tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenHash)
	return nil
}

// Len reports the number of live entries. Test and diagnostics helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes every session expired at the given time and reports how
// many were dropped. Verification already expires sessions lazily; this
// exists only to reclaim space held by long-idle tokens.
func (m *Memory) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for hash, session := range m.sessions {
		if session.Expired(now) {
			delete(m.sessions, hash)
			dropped++
		}
	}
	return dropped
}
