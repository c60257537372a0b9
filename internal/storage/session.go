package storage

import (
	"context"
	"sync"
	"time"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
)

// SessionStore provides in-memory storage of quiz sessions keyed by user ID.
// Handler logic never touches the map directly; all access goes through the
// mutex-guarded methods, so events for different users may be processed
// concurrently.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.Session
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*entities.Session),
	}
}

// Get retrieves the session for a user, if one is in progress.
func (s *SessionStore) Get(_ context.Context, userID int64) (*entities.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok, nil
}

// Put stores the session, replacing any previous one for the same user.
func (s *SessionStore) Put(_ context.Context, session *entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = session
	return nil
}

// Delete removes the session for a user.
func (s *SessionStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// DeleteIdle removes sessions whose last activity is older than ttl and
// returns how many were removed. Covers quizzes the user walked away from.
func (s *SessionStore) DeleteIdle(_ context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed, nil
}
