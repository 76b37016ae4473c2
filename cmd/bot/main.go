package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/escalopa/quran-recite-api/internal/adapter/i18n"
	"github.com/escalopa/quran-recite-api/internal/adapter/quranapi"
	"github.com/escalopa/quran-recite-api/internal/adapter/redis"
	"github.com/escalopa/quran-recite-api/internal/adapter/sqlite"
	"github.com/escalopa/quran-recite-api/internal/adapter/telegram"
	"github.com/escalopa/quran-recite-api/internal/adapter/transcriber"
	"github.com/escalopa/quran-recite-api/internal/application"
	"github.com/escalopa/quran-recite-api/internal/config"
	"github.com/escalopa/quran-recite-api/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logg := logger.New(cfg.Log)
	logg.Info("configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize i18n
	i18nService, err := i18n.NewI18n(cfg.App.LocalesDir)
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}
	logg.Info("i18n initialized")

	// Initialize Redis FSM
	fsm, err := redis.NewFSM(cfg.Redis.URI)
	if err != nil {
		return fmt.Errorf("connect fsm: %w", err)
	}
	defer fsm.Close()
	logg.Info("redis FSM connected")

	// Learner progress
	progress, err := redis.NewProgressStore(cfg.Redis.URI)
	if err != nil {
		return fmt.Errorf("connect progress store: %w", err)
	}
	defer progress.Close()

	// Recitation history
	store, err := sqlite.Open(ctx, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	// Speech-to-text backend
	stt, err := transcriber.New(cfg.Transcriber)
	if err != nil {
		return fmt.Errorf("create transcriber: %w", err)
	}
	logg.WithField("provider", cfg.Transcriber.Provider).Info("transcriber initialized")

	// Canonical ayah text
	verses := quranapi.NewClient(cfg.QuranAPI.BaseURL)

	// Application services
	recitationService := application.NewRecitationService(stt, store, progress, cfg.Transcriber.Language, nil, logg)
	botService := application.NewBotService(recitationService, verses, fsm, i18nService)
	logg.Info("services initialized")

	// Initialize Telegram bot
	bot, err := telegram.NewBot(cfg.Telegram.Token, botService, i18nService, logg)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	logg.Info("telegram bot initialized")

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start bot in a goroutine
	errChan := make(chan error, 1)
	go func() {
		logg.Info("starting bot")
		if err := bot.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		logg.Info("received shutdown signal, stopping bot")
		cancel()
		if err := bot.Stop(); err != nil {
			logg.WithError(err).Error("stop bot")
		}
	case err := <-errChan:
		logg.WithError(err).Error("bot error")
		return err
	}

	logg.Info("bot stopped")
	return nil
}
