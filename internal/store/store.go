// Package store persists incident reports and the event-type vocabulary with GORM.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-incident-reports/internal/observability"
	"github.com/jonboulle/clockwork"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested report does not exist.
var ErrNotFound = errors.New("report not found")

// Store owns the connection pool shared by all request handlers.
type Store struct {
	db      *gorm.DB
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// GormConfig returns the GORM settings used for every dialect. Driver errors
// are translated so duplicate keys surface as gorm.ErrDuplicatedKey, and no
// ping is issued at open time so an unreachable database does not fail startup.
func GormConfig(logger *slog.Logger) *gorm.Config {
	return &gorm.Config{
		Logger:               newSlogLogger(logger),
		TranslateError:       true,
		DisableAutomaticPing: true,
	}
}

// Open creates a Store backed by Postgres at dsn. Connections are established lazily.
func Open(dsn string, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), GormConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return New(db, clock, logger, metrics), nil
}

// New wraps an existing GORM handle.
func New(db *gorm.DB, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{db: db, clock: clock, logger: logger, metrics: metrics}
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}
