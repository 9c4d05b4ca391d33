package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cart-offer/internal/config"
	"cart-offer/internal/database"
	"cart-offer/internal/events"
	"cart-offer/internal/handler"
	"cart-offer/internal/metrics"
	"cart-offer/internal/offer"
	"cart-offer/internal/router"
	"cart-offer/internal/seed"
	"cart-offer/internal/segment"
	"cart-offer/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
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
	logger.Info().Msg("starting cart-offer API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics
	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(reg)
		gatherer = reg
	}

	// Segment resolver
	var resolver segment.Resolver
	switch cfg.Segment.Source {
	case config.SegmentSourcePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if err := database.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		resolver = segment.NewPostgresResolver(pool, logger)
	default:
		resolver = segment.NewHTTPResolver(cfg.Segment.BaseURL, nil, cfg.Segment.Timeout(), logger)
	}
	logger.Info().
		Str("source", cfg.Segment.Source).
		Dur("timeout", cfg.Segment.Timeout()).
		Msg("segment resolver configured")

	// Event publisher
	publisher := events.NewNopPublisher()
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	// Offer engine
	registry := offer.NewSegmentRegistry(cfg.Segment.Segments...)
	engine := service.NewOfferEngine(
		offer.NewStore(),
		offer.NewValidator(registry, logger),
		resolver,
		cfg.Segment.Timeout(),
		publisher,
		m,
		logger,
	)

	if cfg.Seed.Enabled {
		if err := seedOffers(ctx, cfg, engine, logger); err != nil {
			return err
		}
	}

	// Initialize HTTP handlers
	offerHandler := handler.NewOfferHandler(engine, logger)
	cartHandler := handler.NewCartHandler(engine, logger)

	// Initialize router
	mux := router.New(offerHandler, cartHandler, router.Options{Metrics: m, Gatherer: gatherer}, logger)

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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

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

// seedOffers loads the configured seed files, from S3 first when enabled.
func seedOffers(ctx context.Context, cfg *config.Config, creator seed.OfferCreator, logger zerolog.Logger) error {
	var s3Loader seed.Loader
	if cfg.S3.Enabled {
		l, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for seed files (S3 disabled)")
	}

	loader := seed.NewFallbackLoader(s3Loader, seed.NewFileLoader(logger), cfg.S3.Prefix, logger)
	if _, err := seed.Seed(ctx, creator, loader, cfg.Seed.Files, logger); err != nil {
		return fmt.Errorf("failed to seed offers: %w", err)
	}
	return nil
}
