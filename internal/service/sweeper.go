package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionSweeper periodically removes idle in-memory sessions, covering
// quizzes the user abandoned mid-way. The Redis-backed store expires
// sessions via TTL and does not need a sweeper.
type SessionSweeper struct {
	sessions IdleSessionStore
	ttl      time.Duration
	spec     string
	logger   *zap.Logger
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(sessions IdleSessionStore, ttl time.Duration, spec string, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		ttl:      ttl,
		spec:     spec,
		logger:   logger,
	}
}

// Start runs the sweep schedule until the context is canceled.
func (s *SessionSweeper) Start(ctx context.Context) {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.spec, func() {
		removed, err := s.sessions.DeleteIdle(ctx, s.ttl)
		if err != nil {
			s.logger.Error("failed to sweep idle sessions", zap.Error(err))
			return
		}
		if removed > 0 {
			s.logger.Info("idle sessions swept", zap.Int("removed", removed))
		}
	})
	if err != nil {
		s.logger.Error("failed to add sweep cron job", zap.Error(err))
		return
	}

	c.Start()
	s.logger.Info("session sweeper started", zap.String("spec", s.spec))

	<-ctx.Done()

	c.Stop()
	s.logger.Info("session sweeper stopped")
}
