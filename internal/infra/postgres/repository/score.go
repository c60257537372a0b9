package repository

import (
	"context"
	"fmt"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
	"github.com/exahelper/exam-quiz-bot/internal/infra/postgres"
)

// ScoreRepository is the append-only ledger of completed quiz attempts.
type ScoreRepository struct {
	db postgres.DBTX
}

// NewScoreRepository creates a new ScoreRepository with the provided database pool.
func NewScoreRepository(db postgres.DBTX) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Append writes one completed attempt. Records are never updated or deleted.
func (r *ScoreRepository) Append(ctx context.Context, rec *entities.ScoreRecord) error {
	query := `
		INSERT INTO user_scores (user_id, subject, score, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, rec.UserID, rec.Subject, rec.Score, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("append score: %w", err)
	}

	return nil
}

// ListByUser returns all attempts of a user, newest first.
func (r *ScoreRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.ScoreRecord, error) {
	query := `
		SELECT user_id, subject, score, created_at
		FROM user_scores
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var records []*entities.ScoreRecord
	for rows.Next() {
		rec := new(entities.ScoreRecord)
		if err := rows.Scan(&rec.UserID, &rec.Subject, &rec.Score, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
