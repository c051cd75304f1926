package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vacancy-bot/internal/bot"
	"vacancy-bot/internal/config"
	"vacancy-bot/internal/dialog"
	"vacancy-bot/internal/email"
	"vacancy-bot/internal/files"
	"vacancy-bot/internal/logger"
	"vacancy-bot/internal/notify"
	"vacancy-bot/internal/storage/postgres"
	"vacancy-bot/internal/storage/redis"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting vacancy bot",
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("dialog_ttl", cfg.DialogTTL),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	if err := postgres.RunMigrations(cfg.PostgresDSN, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	fileStore, err := files.New(cfg.UploadDir, log)
	if err != nil {
		log.Fatal("failed to create upload dir", zap.Error(err))
	}

	var mailer notify.EmailSender
	if cfg.EmailEnabled() {
		mailer = email.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, log)
		log.Info("SMTP notifications enabled", zap.String("host", cfg.SMTPHost))
	} else {
		log.Info("SMTP not configured, admin email notifications disabled")
	}

	states := dialog.NewManager(cfg.DialogTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go states.Janitor(ctx, 5*time.Minute, log)

	log.Info("initializing Telegram bot...")
	tgBot, err := bot.New(cfg, store, cache, states, fileStore, mailer, log)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	log.Info("bot is running...")

	if err := tgBot.Start(ctx); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
	}

	log.Info("bot stopped")
}
