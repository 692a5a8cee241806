package revenue

import (
	"sort"
	"sync"
	"time"
)

// SessionStore keeps open page sessions.
type SessionStore interface {
	Put(session *Session) error
	Get(id string) (*Session, bool)
	Delete(id string) (*Session, bool)
	// Sweep removes sessions idle since before cutoff and returns them.
	Sweep(cutoff time.Time) []*Session
	Len() int
}

// InMemorySessionStore is a map-backed SessionStore.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemorySessionStore returns an empty store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]*Session)}
}

func (s *InMemorySessionStore) Put(session *Session) error {
	if session == nil || session.ID() == "" {
		return errMissingSessionID
	}
	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()
	return nil
}

func (s *InMemorySessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *InMemorySessionStore) Delete(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return session, ok
}

func (s *InMemorySessionStore) Sweep(cutoff time.Time) []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expired []*Session
	for id, session := range s.sessions {
		if session.LastSeen().Before(cutoff) {
			expired = append(expired, session)
			delete(s.sessions, id)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].ID() < expired[j].ID() })
	return expired
}

func (s *InMemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
