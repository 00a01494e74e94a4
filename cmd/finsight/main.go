package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finsight/internal/advice"
	"finsight/internal/backend"
	"finsight/internal/config"
	"finsight/internal/events"
	apphttp "finsight/internal/http"
	applog "finsight/internal/log"
	"finsight/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	logger.Info("Starting finsight server")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ledger backend
	factory := backend.NewFactory(logger.Logger)
	loaderResult, err := factory.CreateLoader(ctx, backend.Config{
		Type:         backend.Type(cfg.LedgerBackend),
		CSVPath:      cfg.LedgerCSVPath,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize ledger backend", "error", err, "backend", cfg.LedgerBackend)
		os.Exit(1)
	}
	if loaderResult.Cleanup != nil {
		defer loaderResult.Cleanup()
	}

	// Activity events are optional: a missing broker never blocks startup.
	var eventsClient *events.Client
	if cfg.AMQPURL != "" {
		eventsClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to connect to AMQP, activity events disabled", "error", err)
			eventsClient = nil
		} else {
			defer eventsClient.Close()
			logger.Info("Activity events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	advisor := advice.NewGeminiClient(advice.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.AdviceTimeout,
	})
	if cfg.GeminiAPIKey == "" {
		logger.Warn("No Gemini API key configured, advice endpoints will return fallback messages")
	}

	finance := services.New(ctx, loaderResult.Loader, advisor, eventsClient)
	if !finance.Available() {
		logger.Warn("Serving in degraded mode: ledger unavailable", "backend", cfg.LedgerBackend)
	}

	srv := apphttp.NewServer(":"+cfg.Port, finance, cfg.CORSAllowedOrigin)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = cfg.AdviceTimeout + 10*time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Listening", "port", cfg.Port, "backend", cfg.LedgerBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
