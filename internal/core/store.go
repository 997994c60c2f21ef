package core

import (
	"sync"
	"time"
)

// Dataset is a cleaned table held for one session. It is read-only once
// stored; a new upload replaces the whole Dataset.
type Dataset struct {
	Table    *Table
	FileName string
	Format   string
	Bytes    int64
	LoadedAt time.Time
}

type sessionEntry struct {
	data       *Dataset
	lastAccess time.Time
}

// SessionStore maps session identifiers to the dataset each session last
// uploaded. Sessions never see each other's data.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
	}
}

// Put stores d for sessionID, replacing any previous dataset.
func (s *SessionStore) Put(sessionID string, d *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = &sessionEntry{data: d, lastAccess: s.now()}
}

// Get returns the dataset for sessionID and marks the session as used.
func (s *SessionStore) Get(sessionID string) (*Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	e.lastAccess = s.now()
	return e.data, true
}

// Has reports whether sessionID holds a dataset without touching it.
func (s *SessionStore) Has(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

// Delete forgets sessionID.
func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of sessions holding a dataset.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Evict removes sessions idle for longer than ttl and returns how many
// were removed.
func (s *SessionStore) Evict(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, e := range s.sessions {
		if e.lastAccess.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
