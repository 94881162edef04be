package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/storm-incident-reports/internal/domain"
)

// ReportTransformer implements Transformer by stamping each report for
// publication and, when a geocoder is configured, attaching place details.
type ReportTransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates a ReportTransformer. Pass a nil geocoder to disable
// geocoding enrichment.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger) *ReportTransformer {
	return &ReportTransformer{
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *ReportTransformer) Transform(ctx context.Context, r domain.Report) domain.PublishedReport {
	return domain.EnrichWithGeocoding(ctx, domain.NewPublishedReport(r), t.geocoder, t.logger)
}
