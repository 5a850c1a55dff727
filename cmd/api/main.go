package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"donut-store/internal/cart"
	"donut-store/internal/config"
	"donut-store/internal/database"
	"donut-store/internal/handler"
	"donut-store/internal/payment"
	"donut-store/internal/repository"
	"donut-store/internal/router"
	"donut-store/internal/service"
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
	logger.Info().Msg("starting donut-store API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply schema migrations before taking traffic
	if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize cart session store, Redis when enabled with an in-memory
	// fallback when the connection cannot be established
	var cartStore cart.Store
	if cfg.Redis.Enabled {
		ttl := time.Duration(cfg.Redis.CartTTLMin) * time.Minute
		redisStore, err := cart.NewRedisStore(ctx, cfg.Redis.URL, ttl, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to connect to Redis, falling back to in-memory cart store")
			cartStore = cart.NewMemoryStore()
		} else {
			cartStore = redisStore
		}
	} else {
		cartStore = cart.NewMemoryStore()
		logger.Info().Msg("using in-memory cart store (Redis disabled)")
	}

	// Legacy stock tracking decrements catalogue stock as items enter carts
	var ledger *cart.Ledger
	if cfg.Cart.TrackStock {
		ledger = cart.NewLedger(productRepo, logger)
		logger.Info().Msg("cart stock tracking enabled")
	}

	// Initialize payment provider; an unknown provider name is fatal
	provider, err := payment.New(cfg.Payment, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize payment provider: %w", err)
	}

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, provider, logger)

	// Start the pending-order sweeper
	sweeper := service.NewSweeper(
		orderService,
		time.Duration(cfg.Orders.SweepIntervalMin)*time.Minute,
		time.Duration(cfg.Orders.PendingTTLHours)*time.Hour,
		logger,
	)
	go sweeper.Run(ctx)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Product: handler.NewProductHandler(productService, logger),
		Cart:    handler.NewCartHandler(cartStore, productService, ledger, logger),
		Order:   handler.NewOrderHandler(orderService, cartStore, logger),
		Payment: handler.NewPaymentHandler(orderService, logger),
	}

	// Initialize router
	mux := router.New(cfg, handlers, logger)

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
