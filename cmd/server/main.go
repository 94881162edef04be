package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/couchcryptid/storm-incident-reports/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/storm-incident-reports/internal/adapter/kafka"
	"github.com/couchcryptid/storm-incident-reports/internal/adapter/mapbox"
	"github.com/couchcryptid/storm-incident-reports/internal/config"
	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	"github.com/couchcryptid/storm-incident-reports/internal/observability"
	"github.com/couchcryptid/storm-incident-reports/internal/pipeline"
	"github.com/couchcryptid/storm-incident-reports/internal/store"
)

const provisionTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	st, err := store.Open(cfg.DSN(), nil, logger, metrics)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Provisioning failures are not fatal: the API answers 500 until the
	// database is reachable and the tables exist.
	provisionCtx, cancelProvision := context.WithTimeout(context.Background(), provisionTimeout)
	if err := st.Provision(provisionCtx); err != nil {
		logger.Error("schema provisioning failed", "error", err)
	} else {
		logger.Info("schema provisioned")
	}
	cancelProvision()

	// Post-commit publication (feature-flagged via KAFKA_ENABLED).
	var (
		queue        *pipeline.Queue
		writer       *kafkaadapter.Writer
		pipelineDone = make(chan struct{})
	)
	if cfg.KafkaEnabled {
		var geocoder domain.Geocoder
		if cfg.MapboxEnabled {
			client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
			cached, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
			if err != nil {
				logger.Error("failed to create geocoder", "error", err)
				os.Exit(1)
			}
			geocoder = cached
			metrics.GeocodeEnabled.Set(1)
			logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
		} else {
			logger.Info("mapbox geocoding disabled")
		}

		queue = pipeline.NewQueue(cfg.PublishQueueSize, cfg.BatchFlushInterval, nil, logger, metrics)
		writer = kafkaadapter.NewWriter(cfg, logger)
		p := pipeline.New(queue, pipeline.NewTransformer(geocoder, logger), writer, logger, metrics, cfg.BatchSize)

		go func() {
			defer close(pipelineDone)
			// Not tied to the signal context: the publisher drains the queue after Close.
			if err := p.Run(context.Background()); err != nil {
				logger.Error("publisher error", "error", err)
			}
		}()
		logger.Info("report publication enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("report publication disabled")
	}

	deps := httpadapter.Deps{
		Store:          st,
		Ready:          st,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
		Metrics:        metrics,
	}
	if queue != nil {
		deps.Publisher = queue
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	if queue != nil {
		queue.Close()
		select {
		case <-pipelineDone:
		case <-shutdownCtx.Done():
			logger.Warn("publisher did not drain before shutdown deadline", "pending", queue.Len())
		}
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	if err := st.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("shutdown complete")
}
