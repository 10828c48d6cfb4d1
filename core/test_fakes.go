package core

import (
	"sync"
)

// Test-only fakes for the core ports. They live in the package (not in
// _test.go) so subpackage tests could reuse them, mirroring how the
// session store contract is exercised everywhere.

// FakeUserRepository implements UserRepository over a map and counts
// calls so tests can assert when the repository was (not) consulted.
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*User  // by id
	creds map[string]string // email -> password

	findByCredentialsCalls int
	findByIDCalls          int

	findErr error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{
		users: make(map[string]*User),
		creds: make(map[string]string),
	}
}

// AddUser registers a user with a plain-text password. Fakes do not
// hash; secure comparison is the real repository's concern.
func (f *FakeUserRepository) AddUser(user *User, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	f.creds[user.Email] = password
}

func (f *FakeUserRepository) RemoveUser(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		delete(f.creds, user.Email)
		delete(f.users, id)
	}
}

func (f *FakeUserRepository) SetFindErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findErr = err
}

func (f *FakeUserRepository) FindByCredentials(email, password string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByCredentialsCalls++

	if f.findErr != nil {
		return nil, f.findErr
	}

	stored, ok := f.creds[email]
	if !ok || stored != password {
		return nil, nil
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *FakeUserRepository) FindByID(id string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByIDCalls++

	if f.findErr != nil {
		return nil, f.findErr
	}

	return f.users[id], nil
}

func (f *FakeUserRepository) FindByCredentialsCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findByCredentialsCalls
}

// FakeSessionStore implements SessionStore over a map and exposes error
// fields for behavior injection.
type FakeSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	putErr    error
	getErr    error
	deleteErr error
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{
		sessions: make(map[string]*Session),
	}
}

func (f *FakeSessionStore) Put(tokenHash string, s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.sessions[tokenHash] = s
	return nil
}

func (f *FakeSessionStore) Get(tokenHash string) (*Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (f *FakeSessionStore) Delete(tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.sessions, tokenHash)
	return nil
}

func (f *FakeSessionStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}

// stubTokenSource hands out a fixed sequence of tokens.
type stubTokenSource struct {
	mu     sync.Mutex
	tokens []string
	next   int
	err    error
}

func (s *stubTokenSource) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	token := s.tokens[s.next%len(s.tokens)]
	s.next++
	return token, nil
}
