package usecase

import (
	"context"
	"sync"
	"time"

	"TokenPulse/internal/domain/models"
	drepo "TokenPulse/internal/domain/repository"
)

// AnalysisBatcher buffers finished analyses and flushes them in batches to
// the store and, for risky tokens, the alert topic. Batching keeps the
// ClickHouse insert rate sane when rescans fan out over a large watchlist.
type AnalysisBatcher struct {
	store    drepo.AnalysisStore  // optional
	alerts   drepo.AlertPublisher // optional
	minAlert int
	metrics  drepo.Metrics
	batchSz  int
	batchTO  time.Duration

	mu      sync.Mutex
	pending []*models.TokenAnalysis
	stopCh  chan struct{}
	stopped sync.Once
}

// NewAnalysisBatcher creates a batcher. Either destination may be nil.
func NewAnalysisBatcher(
	store drepo.AnalysisStore,
	alerts drepo.AlertPublisher,
	minAlert int,
	batchSz int,
	batchTO time.Duration,
	metrics drepo.Metrics,
) *AnalysisBatcher {
	if batchSz <= 0 {
		batchSz = 50
	}
	if batchTO <= 0 {
		batchTO = 5 * time.Second
	}
	return &AnalysisBatcher{
		store:    store,
		alerts:   alerts,
		minAlert: minAlert,
		metrics:  metrics,
		batchSz:  batchSz,
		batchTO:  batchTO,
		pending:  make([]*models.TokenAnalysis, 0, batchSz),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the timed flush loop.
func (b *AnalysisBatcher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(b.batchTO)
		defer ticker.Stop()
		for {
			select {
			case <-b.stopCh:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.flush(ctx)
			}
		}
	}()
}

// Process appends one analysis, flushing when the batch is full.
func (b *AnalysisBatcher) Process(ctx context.Context, a *models.TokenAnalysis) error {
	b.mu.Lock()
	b.pending = append(b.pending, a)
	full := len(b.pending) >= b.batchSz
	b.mu.Unlock()

	if full {
		return b.flush(ctx)
	}
	return nil
}

// flush drains pending analyses into the store and the alert topic.
func (b *AnalysisBatcher) flush(ctx context.Context) error {
	b.mu.Lock()
	if len(b.pending) == 0 {
		b.mu.Unlock()
		return nil
	}
	batch := b.pending
	b.pending = make([]*models.TokenAnalysis, 0, b.batchSz)
	b.mu.Unlock()

	start := time.Now()
	var firstErr error

	if b.store != nil {
		if err := b.store.StoreBatch(ctx, batch); err != nil {
			b.metrics.RecordError("store_batch")
			firstErr = err
		}
	}

	if b.alerts != nil {
		risky := batch[:0:0]
		for _, a := range batch {
			if a.Risk.Overall.Score >= b.minAlert {
				risky = append(risky, a)
			}
		}
		if len(risky) > 0 {
			if err := b.alerts.PublishBatch(ctx, risky); err != nil {
				b.metrics.RecordError("publish_alert_batch")
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	b.metrics.RecordLatency("persist_batch", time.Since(start).Seconds())
	return firstErr
}

// Close flushes whatever is pending and stops the loop.
func (b *AnalysisBatcher) Close() error {
	b.stopped.Do(func() { close(b.stopCh) })
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.flush(ctx)
}
