package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	"github.com/couchcryptid/storm-incident-reports/internal/observability"
)

// BatchExtractor yields up to batchSize committed reports.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.Report, error)
}

// Transformer turns a committed report into its published form.
type Transformer interface {
	Transform(ctx context.Context, r domain.Report) domain.PublishedReport
}

// BatchLoader writes published reports to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, reports []domain.PublishedReport) error
}

// Pipeline moves committed reports from the queue to the message bus.
// Publication is best effort: a batch that fails to load is logged and dropped.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// Run publishes batches until the extractor reports ErrQueueClosed or ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("publisher started", "batch_size", p.batchSize)
	p.metrics.PublisherRunning.Set(1)
	defer p.metrics.PublisherRunning.Set(0)

	for {
		batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		if errors.Is(err, ErrQueueClosed) {
			p.logger.Info("publisher stopping", "reason", "queue drained")
			return nil
		}
		if ctx.Err() != nil {
			if len(batch) > 0 {
				p.logger.Warn("publisher cancelled with reports pending", "dropped", len(batch))
				p.metrics.PublishDropped.Add(float64(len(batch)))
			}
			p.logger.Info("publisher stopping", "reason", ctx.Err())
			return nil
		}
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			continue
		}
		p.publish(ctx, batch)
	}
}

func (p *Pipeline) publish(ctx context.Context, batch []domain.Report) {
	p.metrics.BatchSize.Observe(float64(len(batch)))

	out := make([]domain.PublishedReport, len(batch))
	for i, r := range batch {
		out[i] = p.transformer.Transform(ctx, r)
	}

	if err := p.loader.LoadBatch(ctx, out); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Error("publish batch failed", "error", err, "batch_size", len(out))
		return
	}
	p.metrics.MessagesProduced.Add(float64(len(out)))
}
