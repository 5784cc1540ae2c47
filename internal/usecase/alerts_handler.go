package usecase

import (
	"context"
	"encoding/json"
	"time"

	"TokenPulse/internal/domain/models"
	domrepo "TokenPulse/internal/domain/repository"
	pkgkafka "TokenPulse/pkg/kafka"
)

// AlertsHandler consumes alert messages off Kafka and lands them in the
// analysis store. Running persistence behind the topic keeps the request
// path free of ClickHouse latency.
type AlertsHandler struct {
	topic   string
	store   domrepo.AnalysisStore
	metrics domrepo.Metrics
}

func NewAlertsHandler(topic string, store domrepo.AnalysisStore, metrics domrepo.Metrics) *AlertsHandler {
	return &AlertsHandler{topic: topic, store: store, metrics: metrics}
}

func (h *AlertsHandler) Topic() string { return h.topic }

func (h *AlertsHandler) Handle(ctx context.Context, b []byte) error {
	var a models.TokenAnalysis
	if err := json.Unmarshal(b, &a); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if a.TokenAddress == "" {
		h.metrics.RecordError("consumer_empty_address")
		return nil // poison message, do not retry
	}

	// E2E latency from scoring time to landing (approx)
	h.metrics.RecordLatency("alert_e2e_seconds", time.Since(a.AnalyzedAt).Seconds())

	start := time.Now()
	err := h.store.Store(ctx, &a)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*AlertsHandler)(nil)
