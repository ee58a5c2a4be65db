package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kitedesk/internal/config"
	"kitedesk/internal/database"
	"kitedesk/internal/handler"
	"kitedesk/internal/pricing"
	"kitedesk/internal/report"
	"kitedesk/internal/repository"
	"kitedesk/internal/router"
	"kitedesk/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
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
	logger.Info().Msg("starting kitedesk API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(pool, logger)
	serviceRepo := repository.NewServiceRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize pricing engine and services
	engine := pricing.NewEngine(serviceRepo, orderRepo, logger)

	customerService := service.NewCustomerService(customerRepo, logger)
	catalogService := service.NewCatalogService(serviceRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	pricingService := service.NewPricingService(engine, orderRepo, logger)

	exporter := report.NewOrderExporter(orderRepo, logger)

	// Initialize HTTP handlers
	customerHandler := handler.NewCustomerHandler(customerService, logger)
	serviceHandler := handler.NewServiceHandler(catalogService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	pricingHandler := handler.NewPricingHandler(pricingService, logger)
	reportHandler := handler.NewReportHandler(exporter, logger)

	// Metrics registry with the standard process and Go collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize router
	mux := router.New(
		customerHandler,
		serviceHandler,
		orderHandler,
		pricingHandler,
		reportHandler,
		registry,
		cfg.Auth.APIKey,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
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
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
