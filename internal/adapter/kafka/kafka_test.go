package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/storm-incident-reports/internal/config"
	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 11, 13, 12, 0, 5, 0, time.UTC)
	report := domain.PublishedReport{
		Report: domain.Report{
			ID:          42,
			Name:        "Teste",
			OccurredAt:  time.Date(2025, 11, 13, 10, 0, 0, 0, time.UTC),
			Coordinates: domain.Coordinates{Latitude: -23.5505, Longitude: -46.6333},
			EventTypes:  []string{"Chuva Forte", "Raios"},
			CreatedAt:   time.Date(2025, 11, 13, 12, 0, 0, 0, time.UTC),
		},
		PlaceName:   "São Paulo",
		GeoSource:   "reverse",
		PublishedAt: now,
	}

	msg, err := serializeToMessage(report)
	require.NoError(t, err)

	assert.Equal(t, []byte("42"), msg.Key)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "report_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("42"), msg.Headers[0].Value)
	assert.Equal(t, "event_types", msg.Headers[1].Key)
	assert.Equal(t, []byte("Chuva Forte,Raios"), msg.Headers[1].Value)
	assert.Equal(t, "published_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, "Teste", body["nome"])
	assert.Equal(t, "2025-11-13T10:00:00Z", body["data"])
	assert.Equal(t, []any{"Chuva Forte", "Raios"}, body["eventos"])
	assert.Equal(t, "São Paulo", body["place_name"])
	assert.Equal(t, "reverse", body["geo_source"])
	assert.NotContains(t, body, "formatted_address")
}

func TestSerializeToMessage_NoEventTypes(t *testing.T) {
	msg, err := serializeToMessage(domain.PublishedReport{Report: domain.Report{ID: 1, EventTypes: []string{}}})
	require.NoError(t, err)

	assert.Empty(t, msg.Headers[1].Value)
	assert.Contains(t, string(msg.Value), `"eventos":[]`)
}

func TestLoadBatch_EmptyIsNoop(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaTopic: "unused"}
	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer w.Close()

	assert.NoError(t, w.LoadBatch(context.Background(), nil))
}
