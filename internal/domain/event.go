package domain

import "time"

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewReport is a validated submission ready to be persisted.
type NewReport struct {
	Name        string
	OccurredAt  time.Time
	Coordinates Coordinates
	EventTypes  []string // requested labels, caller order, duplicates kept
}

// Report is a stored incident report in its external shape.
type Report struct {
	ID          int64       `json:"id"`
	Name        string      `json:"nome"`
	OccurredAt  time.Time   `json:"data"`
	Coordinates Coordinates `json:"coordenadas"`
	EventTypes  []string    `json:"eventos"`
	CreatedAt   time.Time   `json:"timestamp"`
}

// EventType is one active entry of the event-type vocabulary.
type EventType struct {
	ID          int64  `json:"id"`
	Description string `json:"descricao"`
}

// PublishedReport is the message emitted downstream after a report commits.
type PublishedReport struct {
	Report

	// Geocoding enrichment fields.
	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "reverse", "original", "failed"

	PublishedAt time.Time `json:"published_at"`
}
