package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coachpad/coachpad/internal/api"
	"github.com/coachpad/coachpad/internal/auth"
	"github.com/coachpad/coachpad/internal/catalog"
	"github.com/coachpad/coachpad/internal/config"
	"github.com/coachpad/coachpad/internal/database"
	"github.com/coachpad/coachpad/internal/development"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	err = database.EnsureSchema(ctx, pool)
	cancel()
	if err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	users := auth.NewRepository(pool)
	cat := catalog.NewRepository(pool)
	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Hour)
	authService := auth.NewService(users, cat, tokens, cfg.BcryptCost)

	router := api.NewRouter(api.RouterDeps{
		DBPinger:    pool,
		Version:     cfg.Version,
		Tokens:      tokens,
		AuthService: authService,
		Users:       users,
		Catalog:     cat,
		Physical:    development.NewPhysicalRepository(pool),
		Conditional: development.NewConditionalRepository(pool),
		Endurance:   development.NewEnduranceRepository(pool),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting coachpad server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
