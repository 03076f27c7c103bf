package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dishpatch/internal/config"
	"dishpatch/internal/database"
	"dishpatch/internal/handler"
	"dishpatch/internal/lifecycle"
	"dishpatch/internal/notify"
	"dishpatch/internal/repository"
	"dishpatch/internal/router"
	"dishpatch/internal/service"

	"github.com/redis/go-redis/v9"
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
	logger.Info().Msg("starting dishpatch API server")

	// Refuse to start with holes in the transition or view tables; a
	// status added to the model must be routed everywhere.
	if err := lifecycle.CheckTransitions(); err != nil {
		return fmt.Errorf("transition table check failed: %w", err)
	}
	if err := lifecycle.CheckBuckets(); err != nil {
		return fmt.Errorf("view bucket check failed: %w", err)
	}

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize repositories, falling back to the in-memory store when
	// the database is disabled (local development, demos).
	var orderRepo repository.OrderRepository
	var menuRepo repository.MenuRepository

	if cfg.Database.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		orderRepo = repository.NewOrderRepository(pool, logger)
		menuRepo = repository.NewMenuRepository(pool, logger)
	} else {
		logger.Info().Msg("database disabled, using in-memory repositories")
		orderRepo = repository.NewMemoryOrderRepository()
		menuRepo = repository.NewMemoryMenuRepository()
	}

	// Initialize notifiers: structured log always, WebSocket hub for the
	// apps, Redis publisher for push dispatchers when enabled.
	hub := notify.NewHub(logger)
	defer hub.Close()

	notifiers := []notify.Notifier{notify.NewLogNotifier(logger), hub}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		defer redisClient.Close()

		publisher, err := notify.NewRedisPublisher(ctx, redisClient, cfg.Redis.Channel, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise redis publisher, continuing without it")
		} else {
			notifiers = append(notifiers, publisher)
			logger.Info().
				Str("channel", cfg.Redis.Channel).
				Msg("redis status publisher enabled")
		}
	}

	notifier := notify.Multi(notifiers...)

	// Initialize services
	menuService := service.NewMenuService(menuRepo, logger)
	orderService := service.NewOrderService(orderRepo, menuRepo, notifier, logger)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService, logger)
	menuHandler := handler.NewMenuHandler(menuService, logger)

	// Initialize router
	mux := router.New(orderHandler, menuHandler, hub, cfg.Auth.APIKey, logger)

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
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

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
