package metrics

import (
    "sync"

    "github.com/prometheus/client_golang/prometheus"
)

var (
    once sync.Once

    ScoringLatency = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "tokenpulse",
            Subsystem: "scoring",
            Name:      "latency_seconds",
            Help:      "Latency of scoring endpoints",
            Buckets:   prometheus.DefBuckets,
        },
        []string{"endpoint"},
    )

    ScoringErrors = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "tokenpulse",
            Subsystem: "scoring",
            Name:      "errors_total",
            Help:      "Errors by scoring endpoint",
        },
        []string{"endpoint"},
    )
)

func Register() {
    once.Do(func() {
        prometheus.MustRegister(ScoringLatency, ScoringErrors)
    })
}
