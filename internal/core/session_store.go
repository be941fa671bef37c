package core

import (
	"math/rand"
	"sync"

	"go.uber.org/zap"
)

// SessionStore is the in-memory registry of engagement sessions, keyed by
// conversation id. Sessions are created lazily and never evicted; deletion
// is an explicit operation. The store exclusively owns all sessions.
type SessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	rng      *rand.Rand
	rngMu    sync.Mutex
	logger   *zap.Logger
}

// NewSessionStore creates an empty store. The rng seeds persona selection
// for new sessions.
func NewSessionStore(rng *rand.Rand, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		rng:      rng,
		logger:   logger,
	}
}

// GetOrCreate returns the session for the conversation id, creating it with
// default state and a freshly chosen persona if absent.
func (s *SessionStore) GetOrCreate(conversationID string) *Session {
	s.mu.RLock()
	session, ok := s.sessions[conversationID]
	s.mu.RUnlock()
	if ok {
		return session
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock; another request may have raced us.
	if session, ok := s.sessions[conversationID]; ok {
		return session
	}

	session = NewSession(conversationID, s.pickPersona())
	s.sessions[conversationID] = session
	s.logger.Info("Created session",
		zap.String("conversation_id", conversationID),
		zap.String("persona", session.Persona.Name))
	return session
}

// Get returns the session for the conversation id, or ErrSessionNotFound.
func (s *SessionStore) Get(conversationID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[conversationID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session and reports whether it existed. The check and
// the removal happen under one lock, so concurrent deletes of the same id
// see exactly one true.
func (s *SessionStore) Delete(conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[conversationID]; !ok {
		return false
	}
	delete(s.sessions, conversationID)
	s.logger.Info("Deleted session", zap.String("conversation_id", conversationID))
	return true
}

// Count returns the number of live sessions.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) pickPersona() Persona {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return Personas[s.rng.Intn(len(Personas))]
}
