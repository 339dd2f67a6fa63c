package triage

import (
	"sync"

	"github.com/google/uuid"
)

// Session is the transient state of one triage attempt. It lives in a
// Store until the triage is finalized and persisted, then it is discarded.
type Session struct {
	PatientID uuid.UUID
	Step      int
	Answers   map[int]string
	Collected []string
	Vitals    *Vitals
	Finished  bool
	Priority  string
	Ticket    string
	Summary   string
}

func newSession(patientID uuid.UUID) *Session {
	return &Session{
		PatientID: patientID,
		Answers:   make(map[int]string),
		Collected: []string{},
	}
}

// Store holds in-progress sessions keyed by patient. The machine owns no
// storage of its own; a Store is injected at construction.
type Store interface {
	Get(patientID uuid.UUID) (*Session, bool)
	Put(session *Session)
	Delete(patientID uuid.UUID)
}

// MemoryStore is the default single-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID]*Session)}
}

func (s *MemoryStore) Get(patientID uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[patientID]
	return session, ok
}

func (s *MemoryStore) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.PatientID] = session
}

func (s *MemoryStore) Delete(patientID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, patientID)
}
