package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"spendbot/internal/amqp"
	"spendbot/internal/bot"
	"spendbot/internal/config"
	xlog "spendbot/internal/log"
	"spendbot/internal/service"
	"spendbot/internal/storage"
)

func main() {
	// Load .env for local development (ignore errors in production/docker).
	_ = godotenv.Load()

	cfg := config.Load()

	logger := xlog.New(xlog.Config{
		Level:     logLevel(cfg.LogLevel),
		Component: xlog.ComponentApp,
	})
	xlog.SetDefault(logger)

	logger.Info("Starting spendbot", xlog.FieldOperation, xlog.OpStartup)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", xlog.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open storage", xlog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	// Event publishing is optional: no AMQP_URL means the bot runs alone.
	var publisher service.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", xlog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP event publishing disabled - no AMQP_URL provided")
	}

	tracker := service.NewExpenseTracker(repo, publisher)
	defer tracker.Close()

	b, err := bot.NewBot(cfg.TelegramToken, cfg.PollTimeout, tracker, logger)
	if err != nil {
		logger.Error("Failed to start Telegram bot", xlog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Bot stopped with error", xlog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Stopped gracefully", xlog.FieldOperation, xlog.OpShutdown)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
