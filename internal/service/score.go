package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
)

// ScoreService exposes the read side of the score ledger.
type ScoreService struct {
	ledger ScoreLedger
	logger *zap.Logger
}

// NewScoreService creates a new ScoreService.
func NewScoreService(ledger ScoreLedger, logger *zap.Logger) *ScoreService {
	return &ScoreService{
		ledger: ledger,
		logger: logger,
	}
}

// History returns all completed attempts of a user, newest first.
func (s *ScoreService) History(ctx context.Context, userID int64) ([]*entities.ScoreRecord, error) {
	records, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return records, nil
}
