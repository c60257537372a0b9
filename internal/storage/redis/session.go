package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
)

// SessionStore is a Redis-backed implementation of the session store.
// Sessions are stored as JSON snapshots under quiz:session:<userID> with a
// TTL, so abandoned quizzes expire without a sweeper.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the session for a user, if one is in progress.
func (s *SessionStore) Get(ctx context.Context, userID int64) (*entities.Session, bool, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get session: %w", err)
	}

	var session entities.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false, fmt.Errorf("decode session: %w", err)
	}

	return &session, true, nil
}

// Put stores the session, replacing any previous one for the same user and
// refreshing its TTL.
func (s *SessionStore) Put(ctx context.Context, session *entities.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(session.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}

	return nil
}

// Delete removes the session for a user.
func (s *SessionStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(userID int64) string {
	return "quiz:session:" + strconv.FormatInt(userID, 10)
}
