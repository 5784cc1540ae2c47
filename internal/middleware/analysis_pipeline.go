package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"TokenPulse/internal/domain/models"
	domrepo "TokenPulse/internal/domain/repository"
)

// Sink is the minimal downstream interface the pipeline needs.
type Sink interface {
	Process(ctx context.Context, a *models.TokenAnalysis) error
}

// AnalysisPipeline sits between the rescan loop and its sinks (store,
// alert topic, watch hub). It validates, throttles per token, and buffers
// when a sink is unavailable so a ClickHouse hiccup does not stall rescans.
type AnalysisPipeline struct {
	sink     Sink
	metrics  domrepo.Metrics
	maxRPS   int
	bufSize  int
	bufCh    chan *models.TokenAnalysis
	stopCh   chan struct{}
	started  bool
	mu       sync.Mutex
	lastSeen map[string]time.Time // per-token last accepted time

	bufDepthGauge func(int)
	throttleWarn  func(string)
}

type PipelineOption func(*AnalysisPipeline)

// WithMaxRPS sets the max analyses per second per token.
func WithMaxRPS(n int) PipelineOption {
	return func(p *AnalysisPipeline) {
		if n > 0 {
			p.maxRPS = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *AnalysisPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewAnalysisPipeline creates a new pipeline.
func NewAnalysisPipeline(sink Sink, metrics domrepo.Metrics, opts ...PipelineOption) *AnalysisPipeline {
	p := &AnalysisPipeline{
		sink:     sink,
		metrics:  metrics,
		maxRPS:   2,   // rescans are slow-moving, throttle hard
		bufSize:  500, // default buffer
		bufCh:    make(chan *models.TokenAnalysis, 500),
		stopCh:   make(chan struct{}),
		lastSeen: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan *models.TokenAnalysis, p.bufSize)
	}
	p.bufDepthGauge = func(n int) { p.metrics.RecordLatency("pipeline_buffer_depth", float64(n)) }
	p.throttleWarn = func(addr string) { p.metrics.RecordError("pipeline_throttle_" + addr) }
	return p
}

// Start launches background flushing of buffered analyses.
func (p *AnalysisPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case a := <-p.bufCh:
				if a == nil {
					continue
				}
				if err := p.sink.Process(ctx, a); err != nil {
					// exponential backoff with cap
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- a:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *AnalysisPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates, throttles, and forwards the analysis downstream,
// buffering on errors.
func (p *AnalysisPipeline) Process(ctx context.Context, a *models.TokenAnalysis) error {
	start := time.Now()
	if err := validateAnalysis(a); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if !p.allow(a.TokenAddress, start) {
		// throttled; record and drop silently
		p.metrics.RecordError("pipeline_throttle")
		if p.throttleWarn != nil {
			p.throttleWarn(a.TokenAddress)
		}
		return nil
	}

	if err := p.sink.Process(ctx, a); err != nil {
		p.metrics.RecordError("pipeline_process")
		// buffer non-blocking
		select {
		case p.bufCh <- a:
			if p.bufDepthGauge != nil {
				p.bufDepthGauge(len(p.bufCh))
			}
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateAnalysis(a *models.TokenAnalysis) error {
	if a == nil {
		return fmt.Errorf("analysis nil")
	}
	if a.TokenAddress == "" {
		return fmt.Errorf("token address empty")
	}
	if a.AnalyzedAt.IsZero() {
		return fmt.Errorf("analyzed_at unset")
	}
	if a.PriceUsd < 0 || a.LiquidityUsd < 0 {
		return fmt.Errorf("negative price/liquidity")
	}
	return nil
}

func (p *AnalysisPipeline) allow(address string, now time.Time) bool {
	if p.maxRPS <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	last := p.lastSeen[address]
	if last.IsZero() {
		p.lastSeen[address] = now
		return true
	}
	if now.Sub(last) < time.Second/time.Duration(p.maxRPS) {
		return false
	}
	p.lastSeen[address] = now
	return true
}
