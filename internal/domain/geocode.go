package domain

import (
	"context"
	"log/slog"
)

// NewPublishedReport wraps a committed report for publication, stamped with the current time.
func NewPublishedReport(r Report) PublishedReport {
	return PublishedReport{
		Report:      r,
		PublishedAt: clock.Now().UTC(),
	}
}

// EnrichWithGeocoding attempts to attach place details to a published report.
// If geocoder is nil or geocoding fails, the report is returned with
// GeoSource set accordingly.
func EnrichWithGeocoding(ctx context.Context, pr PublishedReport, geocoder Geocoder, logger *slog.Logger) PublishedReport {
	if geocoder == nil {
		return pr
	}

	lat, lon := pr.Coordinates.Latitude, pr.Coordinates.Longitude
	result, err := geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"report_id", pr.ID,
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		pr.GeoSource = "failed"
		return pr
	}
	if result.FormattedAddress == "" {
		pr.GeoSource = "original"
		return pr
	}

	pr.FormattedAddress = result.FormattedAddress
	pr.PlaceName = result.PlaceName
	pr.GeoConfidence = result.Confidence
	pr.GeoSource = "reverse"
	return pr
}
