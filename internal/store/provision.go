package store

import (
	"context"
	"fmt"

	"github.com/couchcryptid/storm-incident-reports/internal/domain"
)

// Provision creates any missing table and seeds the event-type vocabulary when
// it is empty. Existing tables are never altered or dropped, so running it
// repeatedly is harmless.
func (s *Store) Provision(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	migrator := db.Migrator()

	// Referenced tables first so the link table's foreign keys resolve.
	for _, model := range []interface{ TableName() string }{
		&ReportRecord{},
		&EventTypeRecord{},
		&ReportTypeLink{},
	} {
		if migrator.HasTable(model) {
			continue
		}
		if err := migrator.CreateTable(model); err != nil {
			return fmt.Errorf("create table %s: %w", model.TableName(), err)
		}
		s.logger.Info("table created", "table", model.TableName())
	}

	var count int64
	if err := db.Model(&EventTypeRecord{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count event types: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := s.now()
	seed := make([]EventTypeRecord, len(domain.DefaultEventTypes))
	for i, desc := range domain.DefaultEventTypes {
		seed[i] = EventTypeRecord{Description: desc, Active: true, CreatedAt: now}
	}
	// A slice create is a single multi-row INSERT.
	if err := db.Create(&seed).Error; err != nil {
		return fmt.Errorf("seed event types: %w", err)
	}
	s.logger.Info("event type vocabulary seeded", "count", len(seed))
	return nil
}
