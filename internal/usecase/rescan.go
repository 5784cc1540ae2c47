package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"TokenPulse/internal/domain/models"
	"TokenPulse/pkg/logger"
	"TokenPulse/pkg/queue"
)

const rescanMessageType = "rescan.token"

// rescanPayload is the queue message for one watched token.
type rescanPayload struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

// Watchlist reports which tokens currently have live watchers.
type Watchlist interface {
	Watched() []string
}

// Broadcaster receives fresh analyses for fan-out.
type Broadcaster interface {
	Broadcast(a *models.TokenAnalysis)
}

// RescanScheduler enqueues a rescan message per watched token on a fixed
// interval. Work goes through the queue so scans survive a restart mid-tick
// and spread across workers instead of bursting.
type RescanScheduler struct {
	watchlist Watchlist
	queue     queue.QueueService
	interval  time.Duration
	log       *logger.Logger
}

func NewRescanScheduler(watchlist Watchlist, q queue.QueueService, interval time.Duration, log *logger.Logger) *RescanScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RescanScheduler{watchlist: watchlist, queue: q, interval: interval, log: log}
}

// Run ticks until the context is cancelled.
func (s *RescanScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.enqueueAll(ctx)
		}
	}
}

func (s *RescanScheduler) enqueueAll(ctx context.Context) {
	for _, topic := range s.watchlist.Watched() {
		chain, address, ok := splitTopic(topic)
		if !ok {
			continue
		}
		err := s.queue.PublishMessage(ctx, rescanMessageType, rescanPayload{Chain: chain, Address: address})
		if err != nil {
			s.log.Warn("enqueue rescan failed",
				logger.String("topic", topic),
				logger.Error(err))
		}
	}
}

func splitTopic(topic string) (chain, address string, ok bool) {
	i := strings.IndexByte(topic, ':')
	if i <= 0 || i == len(topic)-1 {
		return "", "", false
	}
	return topic[:i], topic[i+1:], true
}

// RescanJob re-analyzes one token and pushes the result to watchers.
type RescanJob struct {
	analyzer *TokenAnalyzer
	hub      Broadcaster
	log      *logger.Logger
}

func NewRescanJob(analyzer *TokenAnalyzer, hub Broadcaster, log *logger.Logger) *RescanJob {
	return &RescanJob{analyzer: analyzer, hub: hub, log: log}
}

func (j *RescanJob) Name() string { return "rescan_token" }
func (j *RescanJob) Type() string { return rescanMessageType }

func (j *RescanJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[rescanPayload](payload)
	if err != nil {
		return fmt.Errorf("parse rescan payload: %w", err)
	}

	analysis, err := j.analyzer.AnalyzeToken(ctx, p.Chain, p.Address)
	if err != nil {
		return fmt.Errorf("rescan %s:%s: %w", p.Chain, p.Address, err)
	}
	if j.hub != nil {
		j.hub.Broadcast(analysis)
	}
	return nil
}

var _ queue.Job = (*RescanJob)(nil)
