package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-pos/internal/auth"
	"cafe-pos/internal/config"
	"cafe-pos/internal/database"
	"cafe-pos/internal/handler"
	"cafe-pos/internal/metrics"
	"cafe-pos/internal/repository"
	"cafe-pos/internal/router"
	"cafe-pos/internal/service"
	"cafe-pos/internal/stockwatch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cafe POS API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	menuRepo := repository.NewMenuRepository(pool, logger)
	txRepo := repository.NewTransactionRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)

	m := metrics.New()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens, cfg.Auth.BcryptCost, logger)
	menuService := service.NewMenuService(menuRepo, logger)
	saleService := service.NewSaleService(txRepo, menuRepo, m, logger)
	reportService := service.NewReportService(reportRepo, menuRepo, logger)

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Auth:        handler.NewAuthHandler(authService, logger),
		Menu:        handler.NewMenuHandler(menuService, logger),
		Transaction: handler.NewTransactionHandler(saleService, logger),
		Report:      handler.NewReportHandler(reportService, logger),
		Health:      handler.NewHealthHandler(pool, logger),
	}, router.Options{
		Verifier:      authService,
		Metrics:       m,
		AllowedOrigin: cfg.CORS.AllowedOrigin,
	}, logger)

	var watcher *stockwatch.Watcher
	if cfg.StockWatch.Enabled {
		watcher, err = stockwatch.New(reportService, m, cfg.StockWatch.Schedule, logger)
		if err != nil {
			return err
		}
		watcher.Start(ctx)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if watcher != nil {
			watcher.Stop(shutdownCtx)
		}

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
