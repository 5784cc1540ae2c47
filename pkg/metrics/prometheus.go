package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analyses    *prometheus.CounterVec
	upstream    *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analyses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenpulse_analyses_total",
				Help: "Total number of token analyses by chain and verdict",
			},
			[]string{"chain", "verdict"},
		),
		upstream: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenpulse_upstream_requests_total",
				Help: "Upstream provider requests by outcome",
			},
			[]string{"provider", "outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tokenpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalysis counts one finished analysis.
func (r *Recorder) RecordAnalysis(chain, verdict string) {
	r.analyses.WithLabelValues(chain, verdict).Inc()
}

// RecordUpstream counts one upstream provider request.
func (r *Recorder) RecordUpstream(provider, outcome string) {
	r.upstream.WithLabelValues(provider, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
