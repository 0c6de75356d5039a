package storage

import (
	"sync"
	"time"

	"github.com/mybambu/transfer-backend/internal/models"
)

// SessionStore holds per-phone conversation sessions. Sessions are
// process-local and lost on restart; the dialogue manager owns the session
// exclusively while handling a message.
type SessionStore interface {
	GetOrCreate(phone string) *models.Session
	Get(phone string) (*models.Session, bool)
	Delete(phone string)
	SweepExpired(ttl time.Duration) int
	Active() []*models.Session
}

// MemorySessionStore is the in-memory SessionStore
type MemorySessionStore struct {
	sessions map[string]*models.Session
	mu       sync.RWMutex
}

// NewMemorySessionStore creates an empty session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*models.Session),
	}
}

// GetOrCreate returns the session for a phone number, creating an idle one if needed
func (s *MemorySessionStore) GetOrCreate(phone string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[phone]
	if !exists {
		session = &models.Session{
			PhoneNumber:  phone,
			State:        models.StateIdle,
			CreatedAt:    time.Now(),
			LastActivity: time.Now(),
		}
		s.sessions[phone] = session
	}
	return session
}

func (s *MemorySessionStore) Get(phone string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[phone]
	return session, exists
}

func (s *MemorySessionStore) Delete(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, phone)
}

// SweepExpired removes sessions idle for longer than ttl and returns how many
func (s *MemorySessionStore) SweepExpired(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for phone, session := range s.sessions {
		if time.Since(session.LastActivity) > ttl {
			delete(s.sessions, phone)
			removed++
		}
	}
	return removed
}

// Active returns all current sessions (for monitoring)
func (s *MemorySessionStore) Active() []*models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*models.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}
