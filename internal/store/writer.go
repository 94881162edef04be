package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateReport inserts a report and one link per recognized event-type label
// inside a single transaction, returning the stored report.
//
// Labels are looked up in caller order against active vocabulary entries by
// exact, case-sensitive description. Unmatched labels are skipped with a
// warning. A label repeated in the submission trips the link table's unique
// index, and any failure after the report insert rolls the whole write back.
func (s *Store) CreateReport(ctx context.Context, in domain.NewReport) (domain.Report, error) {
	row := ReportRecord{
		Name:       in.Name,
		OccurredAt: in.OccurredAt.UTC(),
		Latitude:   in.Coordinates.Latitude,
		Longitude:  in.Coordinates.Longitude,
		CreatedAt:  s.now(),
	}
	linked := make([]string, 0, len(in.EventTypes))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert report: %w", err)
		}

		for _, label := range in.EventTypes {
			var et EventTypeRecord
			err := tx.Select("id").
				Where("descricao = ? AND ativo = ?", label, true).
				First(&et).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.WarnContext(ctx, "event type not found, skipping", "tipo", label, "evento_id", row.ID)
				if s.metrics != nil {
					s.metrics.UnknownEventTypes.Inc()
				}
				continue
			}
			if err != nil {
				return fmt.Errorf("look up event type %q: %w", label, err)
			}

			link := ReportTypeLink{ReportID: row.ID, EventTypeID: et.ID}
			if err := tx.Omit(clause.Associations).Create(&link).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("event type %q submitted more than once: %w", label, err)
				}
				return fmt.Errorf("link event type %q: %w", label, err)
			}
			linked = append(linked, label)
		}
		return nil
	})
	if err != nil {
		return domain.Report{}, err
	}

	report := toDomain(row)
	report.EventTypes = linked
	return report, nil
}
