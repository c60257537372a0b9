package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/exahelper/exam-quiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.logger.Warn("callback without message", zap.String("data", cb.Data))
		return
	}
	chatID := cb.Message.Chat.ID

	// Acknowledge immediately so the client's loading indicator clears,
	// no matter how the event resolves.
	if _, err := h.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.logger.Error("failed to answer callback", zap.Error(err))
	}

	switch {
	case cb.Data == labelResults:
		_ = h.withErrorHandling(h.handleResults())(ctx, chatID)
	case isSubject(cb.Data):
		_ = h.withErrorHandling(h.handleSubject(cb.Data))(ctx, chatID)
	case cb.Data == labelBackToMenu:
		_ = h.withErrorHandling(h.handleBackToMenu())(ctx, chatID)
	case cb.Data == labelRetake:
		_ = h.withErrorHandling(h.handleRetake())(ctx, chatID)
	default:
		_ = h.withErrorHandling(h.handleAnswer(cb.Data))(ctx, chatID)
	}
}

// handleSubject starts (or restarts) a quiz for the selected subject.
func (h *Handler) handleSubject(subject string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		step, err := h.quizService.Start(ctx, chatID, subject)
		if err != nil {
			return err
		}
		return h.sendStep(chatID, step)
	}
}

// handleAnswer grades a selected answer and serves the next question.
func (h *Handler) handleAnswer(label string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		feedback, err := h.quizService.Answer(ctx, chatID, label)
		if err != nil {
			if errors.Is(err, service.ErrNoActiveSession) {
				h.logOrphaned(chatID, label)
				return nil
			}
			return err
		}

		text := msgCorrect
		if !feedback.Correct {
			text = formatIncorrect(feedback.CorrectAnswer)
		}
		if err := h.send(tgbotapi.NewMessage(chatID, text)); err != nil {
			return err
		}

		return h.sendStep(chatID, feedback.Next)
	}
}

// handleBackToMenu destroys the session and shows the subject menu.
func (h *Handler) handleBackToMenu() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.quizService.Abandon(ctx, chatID); err != nil {
			if errors.Is(err, service.ErrNoActiveSession) {
				h.logOrphaned(chatID, labelBackToMenu)
				return nil
			}
			return err
		}

		menu := tgbotapi.NewMessage(chatID, msgChooseSubject)
		menu.ReplyMarkup = subjectMenu()
		return h.send(menu)
	}
}

// handleRetake restarts the current subject from scratch.
func (h *Handler) handleRetake() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		step, err := h.quizService.Retake(ctx, chatID)
		if err != nil {
			if errors.Is(err, service.ErrNoActiveSession) {
				h.logOrphaned(chatID, labelRetake)
				return nil
			}
			return err
		}
		return h.sendStep(chatID, step)
	}
}

// handleResults renders the user's score history.
func (h *Handler) handleResults() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		records, err := h.scoreService.History(ctx, chatID)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			return h.send(tgbotapi.NewMessage(chatID, msgNoResults))
		}

		msg := tgbotapi.NewMessage(chatID, formatScoreHistory(records))
		msg.ReplyMarkup = postQuizMenu()
		return h.send(msg)
	}
}

// sendStep sends the next question, or the completion message with the
// post-quiz menu once the subject is exhausted.
func (h *Handler) sendStep(chatID int64, step *service.QuizStep) error {
	if step.Finished != nil {
		msg := tgbotapi.NewMessage(chatID, formatFinished(step.Finished.Score))
		msg.ReplyMarkup = postQuizMenu()
		return h.send(msg)
	}

	msg := tgbotapi.NewMessage(chatID, step.Question)
	msg.ReplyMarkup = answerKeyboard(step.Options)
	return h.send(msg)
}

func (h *Handler) logOrphaned(chatID int64, data string) {
	h.logger.Warn("orphaned callback, no quiz in progress",
		zap.Int64("chat_id", chatID),
		zap.String("data", data),
	)
}
