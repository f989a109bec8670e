package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"manpower/internal/adapters/discord"
	"manpower/internal/config"
	"manpower/internal/infrastructure/database"
	"manpower/internal/infrastructure/i18n"
	"manpower/internal/infrastructure/logger"
	"manpower/internal/infrastructure/notify"
	"manpower/internal/ports/output"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL, log); err != nil {
		return err
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	var notifier output.ChangeNotifier = notify.Nop{}
	if cfg.RedisURL != "" {
		rn, err := notify.NewRedisNotifier(ctx, cfg.RedisURL, cfg.NotifyChannel, log)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rn.Close()
		notifier = rn
	} else {
		log.Info("REDIS_URL not set, change notifications disabled")
	}

	translator, err := i18n.NewTranslator(cfg.Locale, log)
	if err != nil {
		return err
	}

	bot, err := discord.NewBot(
		cfg,
		log,
		database.NewEventRepository(pool),
		notifier,
		translator,
	)
	if err != nil {
		return err
	}
	return bot.Start(ctx)
}
