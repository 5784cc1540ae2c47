package usecase

import (
	"context"
	"errors"
	"time"

	"TokenPulse/internal/domain/models"
	domrepo "TokenPulse/internal/domain/repository"
	domsvc "TokenPulse/internal/domain/service"
	"TokenPulse/pkg/cache"
	"TokenPulse/pkg/logger"
)

// WalletChecker fetches a wallet portfolio and scores it. A wallet the
// provider has never indexed yields an "unknown" result; a provider outage
// is surfaced so the handler can ask the caller to retry.
type WalletChecker struct {
	provider domrepo.WalletDataProvider
	scorer   domsvc.WalletTrustScorer
	cache    cache.Service
	cacheTTL time.Duration
	metrics  domrepo.Metrics
	log      *logger.Logger
	now      func() time.Time
}

func NewWalletChecker(
	provider domrepo.WalletDataProvider,
	scorer domsvc.WalletTrustScorer,
	cacheSvc cache.Service,
	cacheTTL time.Duration,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *WalletChecker {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &WalletChecker{
		provider: provider,
		scorer:   scorer,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

func (c *WalletChecker) Check(ctx context.Context, address string) (*models.WalletTrustResult, error) {
	key := "wallet:" + address
	if c.cache != nil {
		var cached models.WalletTrustResult
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	summary, err := c.provider.Portfolio(ctx, address)
	switch {
	case err == nil:
		c.metrics.RecordUpstream("wallets", "ok")
	case errors.Is(err, domrepo.ErrNotFound):
		// Unindexed wallet still gets a scored "unknown" result.
		c.metrics.RecordUpstream("wallets", "not_found")
		summary = nil
	default:
		c.metrics.RecordUpstream("wallets", "error")
		return nil, err
	}

	result := c.scorer.Score(summary, c.now())
	if summary == nil {
		result.Address = address
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, &result, c.cacheTTL); err != nil {
			c.log.Warn("cache wallet trust failed", logger.Error(err))
		}
	}
	return &result, nil
}
