package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookery/internal/api"
	"bookery/internal/config"
	"bookery/internal/database"
	"bookery/internal/domain"
	"bookery/internal/events"
	"bookery/internal/logging"
	"bookery/internal/metrics"
	"bookery/internal/models"
	"bookery/internal/repository"
	"bookery/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", defaultConfigPath(), "path to the YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	statsCache := initStatsCache(cfg, logger)

	eventBus := events.NewEventBus()
	subscribeBookingEvents(eventBus, statsCache, logger)

	userSvc := service.NewUserService(db, logger)
	catalogSvc := service.NewCatalogService(db, logger)
	bookingSvc := service.NewBookingService(db, eventBus, cfg.Booking.EnforceAvailability, logger)
	statsSvc := service.NewStatsService(db, statsCache, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.Backup.Enabled {
		backup := database.NewBackupService(cfg.Database.Path, cfg.Database.Backup, logger)
		go backup.Start(ctx)
	}

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go startMetricsServer(cfg.Monitoring.PrometheusPort, logger)
	}

	httpServer := api.NewHTTPServer(cfg, userSvc, catalogSvc, bookingSvc, statsSvc, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}

	logger.Info().Msg("stopped")
	return nil
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "configs/config.yaml"
}

// initStatsCache builds the stats cache: redis fronted by an in-memory
// fallback when an address is configured, memory only otherwise.
func initStatsCache(cfg *config.Config, logger *zerolog.Logger) domain.StatsCache {
	ttl := time.Duration(cfg.Booking.StatsCacheTTL) * time.Second
	memory := repository.NewMemoryStatsCache(ttl)

	if cfg.Redis.Address == "" {
		logger.Info().Msg("redis not configured, using in-memory stats cache")
		return memory
	}

	client := repository.NewRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := repository.Ping(pingCtx, client); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable at startup, failover cache will retry")
	}

	return repository.NewFailoverStatsCache(
		repository.NewRedisStatsCache(client, ttl),
		memory,
		logger,
	)
}

// subscribeBookingEvents logs booking lifecycle events and drops the
// bookings stats snapshot whenever the data underneath it changes.
func subscribeBookingEvents(bus *events.EventBus, cache domain.StatsCache, logger *zerolog.Logger) {
	handler := func(event *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			logger.Warn().Err(err).Str("event", event.Type).Msg("bad event payload")
			return err
		}
		logger.Info().
			Str("event", event.Type).
			Int64("booking_id", payload.BookingID).
			Int64("user_id", payload.UserID).
			Str("status", payload.Status).
			Msg("booking event")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.Delete(ctx, models.StatsCacheKeyBookings); err != nil {
			logger.Warn().Err(err).Msg("stats cache invalidation failed")
		}
		return nil
	}

	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingUpdated,
		events.EventBookingStatusChanged,
		events.EventBookingDeleted,
	} {
		bus.Subscribe(eventType, handler)
	}
}

func startMetricsServer(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Msg("metrics listening")
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server failed")
	}
}
