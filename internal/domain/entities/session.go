package entities

import "time"

// Session is the in-progress quiz state for a single user. There is at most
// one session per user; it lives from subject selection until the question
// list is exhausted or the user returns to the subject menu.
type Session struct {
	UserID        int64     `json:"user_id"`        // chat/user identifier
	Subject       string    `json:"subject"`        // quiz topic, immutable for the session
	NextIndex     int       `json:"next_index"`     // next question position to serve
	Score         int       `json:"score"`          // correct answers so far
	PendingAnswer string    `json:"pending_answer"` // correct answer of the question at NextIndex-1
	StartedAt     time.Time `json:"started_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewSession creates a fresh session at the first question of a subject.
func NewSession(userID int64, subject string) *Session {
	now := time.Now()
	return &Session{
		UserID:    userID,
		Subject:   subject,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the activity timestamp. Idle sessions are swept by age of
// UpdatedAt.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}
