package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
	"github.com/exahelper/exam-quiz-bot/internal/infra/postgres"
)

var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepository provides read-only access to quiz questions in the
// database. Questions are addressed by subject and zero-based position.
type QuestionRepository struct {
	db postgres.DBTX
}

// NewQuestionRepository creates a new QuestionRepository with the provided database pool.
func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Get retrieves the question at the given position within a subject.
// Returns ErrQuestionNotFound when the subject is exhausted at that position.
func (r *QuestionRepository) Get(ctx context.Context, subject string, position int) (*entities.Question, error) {
	query := `
		SELECT subject, question, correct_answer, wrong_answer_1, wrong_answer_2, wrong_answer_3
		FROM questions
		WHERE subject = $1
		ORDER BY id
		LIMIT 1 OFFSET $2
	`

	var q entities.Question
	var wrong1, wrong2, wrong3 string

	err := r.db.QueryRow(ctx, query, subject, position).Scan(
		&q.Subject,
		&q.Text,
		&q.CorrectAnswer,
		&wrong1,
		&wrong2,
		&wrong3,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	q.Position = position
	q.Distractors = []string{wrong1, wrong2, wrong3}

	return &q, nil
}
