package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	"gorm.io/gorm"
)

// ListReports returns every report, most recently created first, each with
// the descriptions of all linked event types whether or not they are still active.
func (s *Store) ListReports(ctx context.Context) ([]domain.Report, error) {
	var rows []ReportRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	types, err := s.linkedTypes(ctx, nil)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.Report, len(rows))
	for i, row := range rows {
		reports[i] = toDomain(row)
		if labels, ok := types[row.ID]; ok {
			reports[i].EventTypes = labels
		}
	}
	return reports, nil
}

// GetReport returns one report by id, or ErrNotFound.
func (s *Store) GetReport(ctx context.Context, id int64) (domain.Report, error) {
	var row ReportRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Report{}, fmt.Errorf("report %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Report{}, fmt.Errorf("get report %d: %w", id, err)
	}

	types, err := s.linkedTypes(ctx, []int64{id})
	if err != nil {
		return domain.Report{}, err
	}

	report := toDomain(row)
	if labels, ok := types[id]; ok {
		report.EventTypes = labels
	}
	return report, nil
}

// ListActiveEventTypes returns the active vocabulary ordered by description.
func (s *Store) ListActiveEventTypes(ctx context.Context) ([]domain.EventType, error) {
	var rows []EventTypeRecord
	err := s.db.WithContext(ctx).
		Select("id", "descricao").
		Where("ativo = ?", true).
		Order("descricao").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}

	types := make([]domain.EventType, len(rows))
	for i, row := range rows {
		types[i] = domain.EventType{ID: row.ID, Description: row.Description}
	}
	return types, nil
}

type linkedType struct {
	ReportID    int64
	Description string
}

// linkedTypes maps report ids to linked descriptions in link insertion order.
// A nil ids slice loads links for every report.
func (s *Store) linkedTypes(ctx context.Context, ids []int64) (map[int64][]string, error) {
	q := s.db.WithContext(ctx).
		Table("eventos_tipos").
		Select("eventos_tipos.evento_id AS report_id, tipo_evento.descricao AS description").
		Joins("JOIN tipo_evento ON tipo_evento.id = eventos_tipos.tipo_evento_id").
		Order("eventos_tipos.id")
	if ids != nil {
		q = q.Where("eventos_tipos.evento_id IN ?", ids)
	}

	var links []linkedType
	if err := q.Scan(&links).Error; err != nil {
		return nil, fmt.Errorf("load event types: %w", err)
	}

	out := make(map[int64][]string)
	for _, l := range links {
		out[l.ReportID] = append(out[l.ReportID], l.Description)
	}
	return out, nil
}

func toDomain(row ReportRecord) domain.Report {
	return domain.Report{
		ID:         row.ID,
		Name:       row.Name,
		OccurredAt: row.OccurredAt.UTC(),
		Coordinates: domain.Coordinates{
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
		},
		EventTypes: []string{},
		CreatedAt:  row.CreatedAt.UTC(),
	}
}
