package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exahelper/exam-quiz-bot/internal/config"
	"github.com/exahelper/exam-quiz-bot/internal/delivery/telegram"
	"github.com/exahelper/exam-quiz-bot/internal/infra/postgres"
	"github.com/exahelper/exam-quiz-bot/internal/infra/postgres/repository"
	"github.com/exahelper/exam-quiz-bot/internal/logger"
	"github.com/exahelper/exam-quiz-bot/internal/service"
	"github.com/exahelper/exam-quiz-bot/internal/storage"
	redisstore "github.com/exahelper/exam-quiz-bot/internal/storage/redis"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context())
		},
	}
}

func runBot(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	log.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	scoreRepo := repository.NewScoreRepository(pool)

	// Sessions live in Redis when configured, in process memory otherwise.
	var sessions service.SessionStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = redisstore.NewSessionStore(client, cfg.Session.TTL)
		log.Info("using redis session store", zap.String("addr", cfg.Redis.Addr))
	} else {
		memStore := storage.NewSessionStore()
		sessions = memStore

		sweeper := service.NewSessionSweeper(memStore, cfg.Session.TTL, cfg.Session.SweepSpec, log)
		go sweeper.Start(ctx)
	}

	quizService := service.NewQuizService(sessions, questionRepo, scoreRepo, log)
	scoreService := service.NewScoreService(scoreRepo, log)

	handler := telegram.NewHandler(
		bot,
		telegram.Config{
			PollTimeout:  cfg.Poll.Timeout,
			PollInterval: cfg.Poll.Interval,
			RetryDelay:   cfg.Poll.RetryDelay,
		},
		log,
		quizService,
		scoreService,
		storage.NewWelcomeSet(),
	)

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("shutdown signal received")
	return nil
}
