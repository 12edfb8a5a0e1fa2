package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chessarena/tournament-service/config"
	"github.com/chessarena/tournament-service/db"
	"github.com/chessarena/tournament-service/handlers"
	"github.com/chessarena/tournament-service/identity"
	"github.com/chessarena/tournament-service/repositories"
	api "github.com/chessarena/tournament-service/routes"
	"github.com/chessarena/tournament-service/services"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Repositories
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	matchupRepo := repositories.NewPostgresMatchupRepository(dbConn)
	rankingRepo := repositories.NewPostgresRankingRepository(dbConn)
	signupRepo := repositories.NewPostgresSignupRepository(dbConn)
	logger.Info("repositories initialized")

	// Identity resolution: delegate to the user service when configured,
	// otherwise resolve names directly from storage.
	var resolver identity.Resolver
	if cfg.IdentityBaseURL != "" {
		resolver = identity.NewClient(cfg.IdentityBaseURL, cfg.IdentityTimeout)
		logger.Info("identity resolver initialized", slog.String("mode", "http"), slog.String("base_url", cfg.IdentityBaseURL))
	} else {
		resolver = identity.NewPostgresResolver(dbConn)
		logger.Info("identity resolver initialized", slog.String("mode", "postgres"))
	}

	// Services
	timeouts := services.Timeouts{Storage: cfg.StorageTimeout, Identity: cfg.IdentityTimeout}
	tournamentService := services.NewTournamentService(
		tournamentRepo, matchupRepo, rankingRepo, signupRepo, resolver, timeouts, logger)
	signupService := services.NewSignupService(signupRepo, timeouts, logger)
	logger.Info("services initialized")

	// HTTP handlers and routes
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, logger)
	signupHandler := handlers.NewSignupHandler(signupService, logger)
	healthHandler := handlers.NewHealthHandler(dbConn, resolver, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, tournamentHandler, signupHandler, healthHandler, cfg.AllowedOrigins, cfg.JWTSecretKey)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
