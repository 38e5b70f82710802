package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadapter "github.com/synchromap/synchromap-go/internal/adapters/http"
	"github.com/synchromap/synchromap-go/internal/adapters/llm/gemini"
	"github.com/synchromap/synchromap-go/internal/adapters/state/sqlite"
	"github.com/synchromap/synchromap-go/internal/app"
	"github.com/synchromap/synchromap-go/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	store, err := sqlite.Open(cfg.StateDBPath, logger)
	if err != nil {
		logger.Error("failed to open state store", "path", cfg.StateDBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	oracle, err := gemini.NewClient(
		context.Background(),
		cfg.GeminiAPIKey,
		cfg.GeminiBaseURL,
		cfg.GeminiModel,
		&http.Client{Timeout: cfg.LLMTimeout},
		logger,
	)
	if err != nil {
		logger.Error("failed to create oracle client", "error", err)
		os.Exit(1)
	}

	svc := app.NewSessionService(oracle, store, logger)
	svc.Restore(context.Background())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc)
	handler.Register(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "model", cfg.GeminiModel)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
