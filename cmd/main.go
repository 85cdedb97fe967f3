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

	"github.com/GabrielDani/futebol-palpites-backend/config"
	"github.com/GabrielDani/futebol-palpites-backend/db"
	"github.com/GabrielDani/futebol-palpites-backend/handlers"
	"github.com/GabrielDani/futebol-palpites-backend/live"
	"github.com/GabrielDani/futebol-palpites-backend/repositories"
	"github.com/GabrielDani/futebol-palpites-backend/routes"
	"github.com/GabrielDani/futebol-palpites-backend/services"
	"github.com/GabrielDani/futebol-palpites-backend/storage"
	_ "github.com/lib/pq"
)

// How often the scheduler checks for matches whose kickoff has passed.
const schedulerInterval = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

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

	// Team logo storage is optional: without R2 credentials the API runs
	// fine, logo uploads just return an error.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 storage not configured, logo uploads disabled")
	}

	liveHub := live.NewHub()
	go liveHub.Run()
	logger.Info("live score hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	guessRepo := repositories.NewPostgresGuessRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, uploader)
	matchService := services.NewMatchService(matchRepo, teamRepo, uploader, liveHub, logger)
	guessService := services.NewGuessService(dbConn, guessRepo, matchRepo)
	groupService := services.NewGroupService(groupRepo, userRepo, guessRepo)
	rankingService := services.NewRankingService(userRepo, guessRepo)
	standingsService := services.NewStandingsService(teamRepo, matchRepo, uploader)
	dashboardService := services.NewDashboardService(userRepo, teamRepo, matchRepo)
	logger.Info("services initialized")

	// Match status scheduler: flips PENDING matches past kickoff to ONGOING.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("match status scheduler started", slog.Duration("interval", schedulerInterval))

		// Run once immediately at startup, then on ticker.
		if err := matchService.AutoUpdateStatuses(context.Background()); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}

		for range ticker.C {
			if err := matchService.AutoUpdateStatuses(context.Background()); err != nil {
				logger.Error("scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	router := routes.InitRoutes(routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Users:     handlers.NewUserHandler(userService),
		Teams:     handlers.NewTeamHandler(teamService),
		Matches:   handlers.NewMatchHandler(matchService, standingsService),
		Guesses:   handlers.NewGuessHandler(guessService),
		Groups:    handlers.NewGroupHandler(groupService),
		Rankings:  handlers.NewRankingHandler(rankingService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		WebSocket: handlers.NewWebSocketHandler(liveHub, logger),
	}, []byte(cfg.JWTSecretKey))
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
