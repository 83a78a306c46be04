package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/studentdesk/studentdesk-backend/internal/config"
	"github.com/studentdesk/studentdesk-backend/internal/database"
	"github.com/studentdesk/studentdesk-backend/internal/handler"
	"github.com/studentdesk/studentdesk-backend/internal/logger"
	"github.com/studentdesk/studentdesk-backend/internal/repository"
	"github.com/studentdesk/studentdesk-backend/internal/router"
	"github.com/studentdesk/studentdesk-backend/internal/service"
	"github.com/studentdesk/studentdesk-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting StudentDesk Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	accountRepo := repository.NewAccountRepository(pool)
	recordRepo := repository.NewStudentRecordRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(accountRepo, tokenService, cfg.BcryptCost)
	directoryService := service.NewDirectoryService(recordRepo, accountRepo, cfg.ListingIncludeRegistrations)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService, log),
		Student: handler.NewStudentHandler(directoryService, log),
		Account: handler.NewAccountHandler(directoryService, log),
		System:  handler.NewSystemHandler(cfg.Environment),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(tokenService, accountRepo, rdb, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
