package engine

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pinmap-service/internal/domain"
)

// sessionKey is where the anonymous voter id lives in the session store.
const sessionKey = "pin_session_id"

// SessionStore persists small values across engine restarts within one
// client session (a browser's local storage, a state file, an in-memory map
// in tests).
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemorySessionStore is the in-memory SessionStore.
type MemorySessionStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		values: make(map[string]string),
	}
}

func (s *MemorySessionStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemorySessionStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// NewAnonymousVoter returns the session's anonymous identity, generating and
// persisting a fresh uuid on first use. Every later call in the same session
// yields the same id, so anonymous votes stay attributable to one voter.
func NewAnonymousVoter(store SessionStore) domain.VoterRef {
	if id, ok := store.Get(sessionKey); ok && id != "" {
		return domain.AnonymousVoter(id)
	}

	id := uuid.NewString()
	store.Set(sessionKey, id)
	return domain.AnonymousVoter(id)
}
