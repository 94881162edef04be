// Command provision creates the report schema and seeds the event-type
// vocabulary, then exits. It is safe to run repeatedly.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/storm-incident-reports/internal/config"
	"github.com/couchcryptid/storm-incident-reports/internal/observability"
	"github.com/couchcryptid/storm-incident-reports/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.DSN(), nil, logger, nil)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	err = st.Provision(ctx)
	if cerr := st.Close(); cerr != nil {
		logger.Warn("database close error", "error", cerr)
	}
	if err != nil {
		logger.Error("schema provisioning failed", "error", err, "host", cfg.DBHost, "database", cfg.DBName)
		os.Exit(1)
	}
	logger.Info("schema provisioned", "host", cfg.DBHost, "database", cfg.DBName)
}
