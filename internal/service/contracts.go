package service

import (
	"context"
	"time"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
)

// SessionStore holds the single in-progress quiz session per user. At most
// one session exists per user ID at any time.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*entities.Session, bool, error)
	Put(ctx context.Context, session *entities.Session) error
	Delete(ctx context.Context, userID int64) error
}

// QuestionRepository resolves questions by subject and zero-based position.
type QuestionRepository interface {
	Get(ctx context.Context, subject string, position int) (*entities.Question, error)
}

// ScoreLedger is the append-only record of completed quiz attempts.
type ScoreLedger interface {
	Append(ctx context.Context, rec *entities.ScoreRecord) error
	ListByUser(ctx context.Context, userID int64) ([]*entities.ScoreRecord, error)
}

// IdleSessionStore is implemented by stores that need explicit cleanup of
// abandoned sessions (the Redis store expires them via TTL instead).
type IdleSessionStore interface {
	DeleteIdle(ctx context.Context, ttl time.Duration) (int, error)
}
