// Command vicemergencyd polls the VicEmergency incidents feed and exposes
// nearby incidents as geolocation entities: lifecycle events go to Kafka when
// configured, and the current set is served over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/kuchel77/vicemergency-feed/internal/adapter/http"
	kafkaadapter "github.com/kuchel77/vicemergency-feed/internal/adapter/kafka"
	"github.com/kuchel77/vicemergency-feed/internal/config"
	"github.com/kuchel77/vicemergency-feed/internal/domain"
	"github.com/kuchel77/vicemergency-feed/internal/feed"
	"github.com/kuchel77/vicemergency-feed/internal/observability"
	"github.com/kuchel77/vicemergency-feed/internal/poller"
	"github.com/kuchel77/vicemergency-feed/internal/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := feed.NewClient(cfg.FeedURL, cfg.FetchTimeout, logger)
	reg := registry.New()

	filter := domain.Filter{
		Home:              domain.Coordinate{Latitude: cfg.HomeLatitude, Longitude: cfg.HomeLongitude},
		RadiusKm:          cfg.RadiusKm,
		IncludeCategories: cfg.IncludeCategories,
		ExcludeCategories: cfg.ExcludeCategories,
		Statewide:         cfg.Statewide,
	}

	// Kafka publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var publisher poller.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	p := poller.New(client, filter, reg, publisher, logger, metrics, cfg.ScanInterval)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, reg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start feed poller.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("poller error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
