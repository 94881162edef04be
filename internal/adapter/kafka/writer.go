package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/storm-incident-reports/internal/config"
	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces published reports to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes a batch of reports and writes them in a single
// WriteMessages call. Messages are keyed by report id so every message for a
// report lands on the same partition.
func (w *Writer) LoadBatch(ctx context.Context, reports []domain.PublishedReport) error {
	if len(reports) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(reports))
	for i := range reports {
		msg, err := serializeToMessage(reports[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages to %s: %w", len(msgs), w.writer.Topic, err)
	}
	w.logger.DebugContext(ctx, "reports published", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a PublishedReport into a Kafka message.
func serializeToMessage(r domain.PublishedReport) (kafkago.Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report %d: %w", r.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatInt(r.ID, 10)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "report_id", Value: []byte(strconv.FormatInt(r.ID, 10))},
			{Key: "event_types", Value: []byte(strings.Join(r.EventTypes, ","))},
			{Key: "published_at", Value: []byte(r.PublishedAt.Format(time.RFC3339))},
		},
	}, nil
}
