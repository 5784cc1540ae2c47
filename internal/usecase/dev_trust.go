package usecase

import (
	"context"
	"time"

	"TokenPulse/internal/domain/models"
	domrepo "TokenPulse/internal/domain/repository"
	domsvc "TokenPulse/internal/domain/service"
	"TokenPulse/pkg/cache"
	"TokenPulse/pkg/logger"
)

// Peak market cap boundaries for classifying a creator's past launches.
const (
	ruggedPeakBelow    = 1_000
	successfulPeakOver = 50_000
)

// DevTrustChecker enriches a creator address from the chain indexer and
// scores it. Each enrichment call can fail on its own; whatever resolved
// still feeds the scorer, and a total blackout yields an "unknown" result
// rather than an error.
type DevTrustChecker struct {
	indexer  domrepo.ChainIndexer // optional
	market   domrepo.MarketDataProvider
	scorer   domsvc.DevTrustScorer
	cache    cache.Service
	cacheTTL time.Duration
	metrics  domrepo.Metrics
	log      *logger.Logger
	now      func() time.Time
}

func NewDevTrustChecker(
	indexer domrepo.ChainIndexer,
	market domrepo.MarketDataProvider,
	scorer domsvc.DevTrustScorer,
	cacheSvc cache.Service,
	cacheTTL time.Duration,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *DevTrustChecker {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &DevTrustChecker{
		indexer:  indexer,
		market:   market,
		scorer:   scorer,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

// Check scores the creator wallet. mint is optional; when present it
// unlocks the authority and holder-concentration sub-scores plus pair
// enrichment for the market-shaped deltas.
func (c *DevTrustChecker) Check(ctx context.Context, creator, mint string) (*models.DevTrustResult, error) {
	key := "devtrust:" + creator + ":" + mint
	if c.cache != nil {
		var cached models.DevTrustResult
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	profile := c.buildProfile(ctx, creator, mint)

	var pair *models.PairSnapshot
	if mint != "" && c.market != nil {
		pairs, err := c.market.PairsByToken(ctx, string(domrepo.ChainSolana), mint)
		if err != nil {
			c.log.Debug("dev trust pair enrichment unavailable",
				logger.String("mint", mint), logger.Error(err))
		} else {
			pair = mostLiquid(pairs)
		}
	}

	result := c.scorer.Score(profile, pair, c.now())
	c.metrics.RecordAnalysis("solana", "devtrust:"+string(result.RiskLevel))

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, &result, c.cacheTTL); err != nil {
			c.log.Warn("cache dev trust failed", logger.Error(err))
		}
	}
	return &result, nil
}

func (c *DevTrustChecker) buildProfile(ctx context.Context, creator, mint string) *models.CreatorProfile {
	profile := &models.CreatorProfile{Address: creator}
	if c.indexer == nil {
		return profile
	}

	if mint != "" {
		if auth, err := c.indexer.TokenAuthorities(ctx, mint); err != nil {
			c.metrics.RecordUpstream("indexer", "error")
			c.log.Debug("authority lookup failed", logger.Error(err))
		} else {
			profile.KnownAuthorities = true
			profile.MintAuthorityEnabled = auth.MintAuthorityEnabled
			profile.FreezeAuthorityEnabled = auth.FreezeAuthorityEnabled
		}

		if pct, err := c.indexer.TopHolderPct(ctx, mint); err != nil {
			c.metrics.RecordUpstream("indexer", "error")
			c.log.Debug("holder lookup failed", logger.Error(err))
		} else {
			profile.KnownHolders = true
			profile.Top10HolderPct = pct
		}
	}

	if coins, err := c.indexer.CreatorCoins(ctx, creator); err != nil {
		c.metrics.RecordUpstream("indexer", "error")
		c.log.Debug("creator history lookup failed", logger.Error(err))
	} else if len(coins) > 0 {
		profile.KnownHistory = true
		profile.CoinsCreated = len(coins)
		var peakSum float64
		var known int
		for _, coin := range coins {
			switch {
			case coin.PeakMarketCap >= successfulPeakOver || coin.BondingComplete:
				profile.SuccessfulCoins++
			case coin.PeakMarketCap > 0 && coin.PeakMarketCap < ruggedPeakBelow:
				profile.RuggedCoins++
			}
			// Coins the indexer has no market data for stay unclassified.
			if coin.PeakMarketCap > 0 {
				peakSum += coin.PeakMarketCap
				known++
			}
		}
		if known > 0 {
			profile.AvgPeakMarketCap = peakSum / float64(known)
		}
	}

	return profile
}
