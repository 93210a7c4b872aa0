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

	"github.com/bgmi-arena/tournament-system/config"
	"github.com/bgmi-arena/tournament-system/db"
	"github.com/bgmi-arena/tournament-system/engine"
	"github.com/bgmi-arena/tournament-system/handlers"
	"github.com/bgmi-arena/tournament-system/live"
	"github.com/bgmi-arena/tournament-system/repositories"
	api "github.com/bgmi-arena/tournament-system/routes"
	"github.com/bgmi-arena/tournament-system/services"
	"github.com/bgmi-arena/tournament-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const schedulerInterval = 5 * time.Minute

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
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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

	wsHub := live.NewHub()
	go wsHub.Run()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	pollRepo := repositories.NewPostgresPollRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	statsRepo := repositories.NewPostgresStatsRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	prizeRepo := repositories.NewPostgresPrizeRepository(dbConn)

	authService := services.NewAuthService(userRepo)
	playerService := services.NewPlayerService(playerRepo, uploader, engine.DefaultCategoryThresholds, logger)
	tournamentService := services.NewTournamentService(tournamentRepo, logger)
	pollService := services.NewPollService(pollRepo, playerRepo, tournamentRepo, logger)
	teamService := services.NewTeamService(dbConn, teamRepo, tournamentRepo, pollRepo, playerRepo, pollService, wsHub, logger)
	rankingService := services.NewRankingService(statsRepo)
	matchService := services.NewMatchService(statsRepo, teamRepo, tournamentRepo, rankingService, wsHub, logger)
	prizeService := services.NewPrizeService(dbConn, prizeRepo, teamRepo, playerRepo, tournamentRepo, rankingService, engine.DefaultPrizeTiers, wsHub, logger)
	dashboardService := services.NewDashboardService(tournamentService, teamService, rankingService, prizeService)

	// Background maintenance: advance tournament statuses by date and keep
	// player skill categories in sync with their lifetime stats.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("scheduler started", slog.Duration("interval", schedulerInterval))

		runOnce := func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			if moved, err := tournamentService.SyncStatuses(ctx); err != nil {
				logger.Error("scheduler: status sync failed", slog.Any("error", err))
			} else if moved > 0 {
				logger.Info("scheduler: tournament statuses advanced", slog.Int("count", moved))
			}
			if updated, err := playerService.RecalculateCategories(ctx); err != nil {
				logger.Error("scheduler: category recalculation failed", slog.Any("error", err))
			} else if updated > 0 {
				logger.Info("scheduler: player categories updated", slog.Int("count", updated))
			}
		}

		runOnce()
		for range ticker.C {
			runOnce()
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	playerHandler := handlers.NewPlayerHandler(playerService)
	pollHandler := handlers.NewPollHandler(pollService)
	teamHandler := handlers.NewTeamHandler(teamService)
	matchHandler := handlers.NewMatchHandler(matchService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, rankingService, dashboardService)
	prizeHandler := handlers.NewPrizeHandler(prizeService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, tournamentService, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		playerHandler,
		pollHandler,
		teamHandler,
		matchHandler,
		tournamentHandler,
		prizeHandler,
		webSocketHandler,
	)

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
}
