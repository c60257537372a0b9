package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
	"github.com/exahelper/exam-quiz-bot/internal/infra/postgres/repository"
)

var ErrNoActiveSession = errors.New("no active quiz session")

// QuizStep is the outcome of advancing a quiz: either the next question with
// its shuffled answer options, or the final result once the subject is
// exhausted.
type QuizStep struct {
	Question string
	Options  []string
	Finished *QuizResult
}

// QuizResult is the final score of a completed quiz.
type QuizResult struct {
	Subject string
	Score   int
}

// AnswerFeedback reports how the submitted answer was graded, together with
// the step that follows it.
type AnswerFeedback struct {
	Correct       bool
	CorrectAnswer string
	Next          *QuizStep
}

// QuizService drives the per-user quiz state machine. All transitions go
// through the session store; the service itself keeps no state.
type QuizService struct {
	sessions  SessionStore
	questions QuestionRepository
	ledger    ScoreLedger
	logger    *zap.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	sessions SessionStore,
	questions QuestionRepository,
	ledger ScoreLedger,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		sessions:  sessions,
		questions: questions,
		ledger:    ledger,
		logger:    logger,
	}
}

// Start begins a quiz for the chosen subject. Any quiz already in progress
// for the user is replaced.
func (s *QuizService) Start(ctx context.Context, userID int64, subject string) (*QuizStep, error) {
	s.logger.Info("quiz started",
		zap.Int64("user_id", userID),
		zap.String("subject", subject),
	)

	return s.advance(ctx, entities.NewSession(userID, subject))
}

// Answer grades the submitted answer label against the pending question and
// advances the quiz. Returns ErrNoActiveSession when no quiz is in progress.
func (s *QuizService) Answer(ctx context.Context, userID int64, label string) (*AnswerFeedback, error) {
	session, ok, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !ok {
		return nil, ErrNoActiveSession
	}

	// The correct answer was snapshotted when the question was sent, so
	// grading does not depend on the repository still returning the same row.
	correct := label == session.PendingAnswer
	feedback := &AnswerFeedback{
		Correct:       correct,
		CorrectAnswer: session.PendingAnswer,
	}
	if correct {
		session.Score++
	}

	next, err := s.advance(ctx, session)
	if err != nil {
		return nil, err
	}

	feedback.Next = next
	return feedback, nil
}

// Retake restarts the current subject from the first question with a zero
// score. Returns ErrNoActiveSession when no quiz is in progress.
func (s *QuizService) Retake(ctx context.Context, userID int64) (*QuizStep, error) {
	session, ok, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !ok {
		return nil, ErrNoActiveSession
	}

	s.logger.Info("quiz restarted",
		zap.Int64("user_id", userID),
		zap.String("subject", session.Subject),
	)

	return s.advance(ctx, entities.NewSession(userID, session.Subject))
}

// Abandon destroys the session when the user returns to the subject menu.
// Returns ErrNoActiveSession when no quiz is in progress.
func (s *QuizService) Abandon(ctx context.Context, userID int64) error {
	_, ok, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if !ok {
		return ErrNoActiveSession
	}

	return s.sessions.Delete(ctx, userID)
}

// advance serves the question at the session's next index, or completes the
// quiz when the subject is exhausted. The index is incremented before the
// step is returned, so the question just served is always at NextIndex-1.
func (s *QuizService) advance(ctx context.Context, session *entities.Session) (*QuizStep, error) {
	question, err := s.questions.Get(ctx, session.Subject, session.NextIndex)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return s.complete(ctx, session)
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	session.PendingAnswer = question.CorrectAnswer
	session.NextIndex++
	session.Touch()

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("put session: %w", err)
	}

	return &QuizStep{
		Question: question.Text,
		Options:  shuffleAnswers(question.Answers()),
	}, nil
}

// complete records the final score and destroys the session. A ledger write
// failure is logged but does not block completion.
func (s *QuizService) complete(ctx context.Context, session *entities.Session) (*QuizStep, error) {
	rec := &entities.ScoreRecord{
		UserID:    session.UserID,
		Subject:   session.Subject,
		Score:     session.Score,
		CreatedAt: time.Now(),
	}
	if err := s.ledger.Append(ctx, rec); err != nil {
		s.logger.Error("failed to append score record",
			zap.Int64("user_id", session.UserID),
			zap.String("subject", session.Subject),
			zap.Error(err),
		)
	}

	if err := s.sessions.Delete(ctx, session.UserID); err != nil {
		return nil, fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info("quiz completed",
		zap.Int64("user_id", session.UserID),
		zap.String("subject", session.Subject),
		zap.Int("score", session.Score),
	)

	return &QuizStep{
		Finished: &QuizResult{
			Subject: session.Subject,
			Score:   session.Score,
		},
	}, nil
}
