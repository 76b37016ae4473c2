package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/escalopa/quran-recite-api/internal/adapter/httpapi"
	"github.com/escalopa/quran-recite-api/internal/adapter/redis"
	"github.com/escalopa/quran-recite-api/internal/adapter/sqlite"
	"github.com/escalopa/quran-recite-api/internal/adapter/transcriber"
	"github.com/escalopa/quran-recite-api/internal/application"
	"github.com/escalopa/quran-recite-api/internal/config"
	"github.com/escalopa/quran-recite-api/internal/logger"
	"github.com/escalopa/quran-recite-api/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
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

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Telemetry
	metricsHandler, shutdownMetrics, err := telemetry.Setup(cfg.Telemetry.ServiceName, cfg.Telemetry.Environment)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			logg.WithError(err).Warn("shutdown telemetry")
		}
	}()

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	// Speech-to-text backend
	stt, err := transcriber.New(cfg.Transcriber)
	if err != nil {
		return fmt.Errorf("create transcriber: %w", err)
	}
	logg.WithField("provider", cfg.Transcriber.Provider).Info("transcriber initialized")

	// Recitation history
	store, err := sqlite.Open(ctx, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	logg.WithField("path", cfg.Store.Path).Info("recitation store opened")

	// Learner progress
	progress, err := redis.NewProgressStore(cfg.Redis.URI)
	if err != nil {
		return fmt.Errorf("connect progress store: %w", err)
	}
	defer progress.Close()
	logg.Info("progress store connected")

	service := application.NewRecitationService(stt, store, progress, cfg.Transcriber.Language, metrics, logg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := httpapi.NewServer(addr, service, cfg.Server.APIKey, metricsHandler, logg)

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	logg.Info("server stopped")
	return nil
}
