package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
	"github.com/exahelper/exam-quiz-bot/internal/service"
)

// BotAPI is the slice of the Telegram client the handler uses. Satisfied by
// *tgbotapi.BotAPI; faked in tests.
type BotAPI interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type QuizService interface {
	Start(ctx context.Context, userID int64, subject string) (*service.QuizStep, error)
	Answer(ctx context.Context, userID int64, label string) (*service.AnswerFeedback, error)
	Retake(ctx context.Context, userID int64) (*service.QuizStep, error)
	Abandon(ctx context.Context, userID int64) error
}

type ScoreService interface {
	History(ctx context.Context, userID int64) ([]*entities.ScoreRecord, error)
}

// WelcomeSet suppresses repeated welcome messages.
type WelcomeSet interface {
	MarkWelcomed(userID int64) bool
}
