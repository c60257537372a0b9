package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Config controls the update-dispatch loop timing.
type Config struct {
	PollTimeout  int           // long-poll timeout in seconds passed to getUpdates
	PollInterval time.Duration // pause between successful poll cycles
	RetryDelay   time.Duration // pause after a failed poll before retrying
}

// Handler owns the polling loop and routes inbound updates to the quiz
// services.
type Handler struct {
	api          BotAPI
	cfg          Config
	logger       *zap.Logger
	quizService  QuizService
	scoreService ScoreService
	welcomed     WelcomeSet
}

func NewHandler(
	api BotAPI,
	cfg Config,
	logger *zap.Logger,
	quizService QuizService,
	scoreService ScoreService,
	welcomed WelcomeSet,
) *Handler {
	return &Handler{
		api:          api,
		cfg:          cfg,
		logger:       logger,
		quizService:  quizService,
		scoreService: scoreService,
		welcomed:     welcomed,
	}
}

// Run polls Telegram for updates until the context is canceled. Poll
// failures are retried after RetryDelay; no error terminates the loop.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	offset := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = h.cfg.PollTimeout

		updates, err := h.api.GetUpdates(u)
		if err != nil {
			h.logger.Error("failed to fetch updates", zap.Error(err))
			if !sleepCtx(ctx, h.cfg.RetryDelay) {
				return ctx.Err()
			}
			continue
		}

		for _, update := range updates {
			// Advance the cursor before acting on the event: a crash
			// mid-handling skips the event on restart instead of replaying
			// it. Telegram delivers at least once; this makes handling
			// at most once.
			offset = update.UpdateID + 1
			h.handleUpdate(ctx, update)
		}

		if !sleepCtx(ctx, h.cfg.PollInterval) {
			return ctx.Err()
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("message received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	h.handleMessage(update.Message)
}

func (h *Handler) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() && msg.Command() == "start" {
		// Welcome each user once; a repeated /start is a no-op.
		if !h.welcomed.MarkWelcomed(chatID) {
			return
		}

		welcome := tgbotapi.NewMessage(chatID, msgWelcome)
		welcome.ReplyMarkup = subjectMenu()
		_ = h.send(welcome)
		return
	}

	_ = h.send(tgbotapi.NewMessage(chatID, msgUnknownCommand))
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(tgbotapi.NewMessage(chatID, text))
}

// send delivers an outbound message. Failures are logged and dropped; they
// never block or crash the loop.
func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.api.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// sleepCtx pauses for d, returning false if the context was canceled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
