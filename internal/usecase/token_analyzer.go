package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"TokenPulse/internal/domain/models"
	domrepo "TokenPulse/internal/domain/repository"
	domsvc "TokenPulse/internal/domain/service"
	"TokenPulse/internal/services/scoring"
	"TokenPulse/pkg/cache"
	"TokenPulse/pkg/logger"
	"TokenPulse/pkg/util"
)

var (
	// ErrTokenNotFound means no provider knows the token. Distinct from an
	// outage so handlers can answer "not found, try again later".
	ErrTokenNotFound = errors.New("token not found on any provider")

	// ErrProvidersDown means every provider in the chain errored out.
	ErrProvidersDown = errors.New("all market-data providers unavailable")
)

// TokenAnalyzer runs the full scoring pipeline for a query or a concrete
// token. Market data comes from an ordered provider chain; the first
// provider that answers wins, not-found only counts when every provider
// agrees.
type TokenAnalyzer struct {
	providers []domrepo.MarketDataProvider
	risk      domsvc.RiskScorer
	sentiment domsvc.SentimentScorer
	momentum  domsvc.MomentumScorer
	predictor domsvc.Predictor
	verdict   domsvc.VerdictBuilder

	cache    cache.Service
	cacheTTL time.Duration
	store    domrepo.AnalysisStore  // optional
	alerts   domrepo.AlertPublisher // optional
	sink     AnalysisSink           // optional, overrides direct writes
	minAlert int
	metrics  domrepo.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// AnalysisSink receives every finished analysis for persistence fan-out.
type AnalysisSink interface {
	Process(ctx context.Context, a *models.TokenAnalysis) error
}

type AnalyzerOption func(*TokenAnalyzer)

func WithAnalysisStore(store domrepo.AnalysisStore) AnalyzerOption {
	return func(a *TokenAnalyzer) { a.store = store }
}

func WithAlertPublisher(pub domrepo.AlertPublisher, minRiskScore int) AnalyzerOption {
	return func(a *TokenAnalyzer) {
		a.alerts = pub
		a.minAlert = minRiskScore
	}
}

// WithPersistSink routes persistence through a sink (batcher, pipeline)
// instead of writing to the store and alert topic directly.
func WithPersistSink(sink AnalysisSink) AnalyzerOption {
	return func(a *TokenAnalyzer) { a.sink = sink }
}

func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *TokenAnalyzer) { a.now = now }
}

func NewTokenAnalyzer(
	providers []domrepo.MarketDataProvider,
	risk domsvc.RiskScorer,
	sentiment domsvc.SentimentScorer,
	momentum domsvc.MomentumScorer,
	predictor domsvc.Predictor,
	verdict domsvc.VerdictBuilder,
	cacheSvc cache.Service,
	cacheTTL time.Duration,
	metrics domrepo.Metrics,
	log *logger.Logger,
	opts ...AnalyzerOption,
) *TokenAnalyzer {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	a := &TokenAnalyzer{
		providers: providers,
		risk:      risk,
		sentiment: sentiment,
		momentum:  momentum,
		predictor: predictor,
		verdict:   verdict,
		cache:     cacheSvc,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze resolves a free-text query to tokens and scores each. The query
// is validated first (empty, multi-token, and large-cap tickers are
// rejected); address shaped queries skip search and go straight to the
// pair lookup.
func (a *TokenAnalyzer) Analyze(ctx context.Context, query string, limit int) ([]*models.TokenAnalysis, error) {
	if limit <= 0 {
		limit = 5
	}

	query, kind, err := scoring.ValidateQuery(query)
	if err != nil {
		return nil, err
	}

	var pairs []models.PairSnapshot
	switch kind {
	case scoring.QuerySolanaAddress:
		pairs, err = a.fetchPairs(ctx, func(p domrepo.MarketDataProvider) ([]models.PairSnapshot, error) {
			return p.PairsByToken(ctx, string(domrepo.ChainSolana), query)
		})
	case scoring.QueryEVMAddress:
		pairs, err = a.fetchPairs(ctx, func(p domrepo.MarketDataProvider) ([]models.PairSnapshot, error) {
			return p.PairsByToken(ctx, string(domrepo.ChainEthereum), query)
		})
	default:
		pairs, err = a.fetchPairs(ctx, func(p domrepo.MarketDataProvider) ([]models.PairSnapshot, error) {
			return p.Search(ctx, query)
		})
	}
	if err != nil {
		return nil, err
	}

	results := make([]*models.TokenAnalysis, 0, limit)
	for _, pair := range bestPairPerToken(pairs) {
		if len(results) >= limit {
			break
		}
		results = append(results, a.scorePair(ctx, pair))
	}
	return results, nil
}

// AnalyzeToken scores one token address, serving from cache when fresh.
func (a *TokenAnalyzer) AnalyzeToken(ctx context.Context, chain, address string) (*models.TokenAnalysis, error) {
	chain = string(domrepo.NormalizeChain(chain))
	key := analysisCacheKey(chain, address)

	if a.cache != nil {
		var cached models.TokenAnalysis
		if err := a.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	pairs, err := a.fetchPairs(ctx, func(p domrepo.MarketDataProvider) ([]models.PairSnapshot, error) {
		return p.PairsByToken(ctx, chain, address)
	})
	if err != nil {
		return nil, err
	}

	pair := mostLiquid(pairs)
	if pair == nil {
		return nil, ErrTokenNotFound
	}

	analysis := a.scorePair(ctx, *pair)
	if a.cache != nil {
		if err := a.cache.Set(ctx, key, analysis, a.cacheTTL); err != nil {
			a.log.Warn("cache analysis failed", logger.Error(err))
		}
	}
	return analysis, nil
}

// History returns persisted analyses, newest first.
func (a *TokenAnalyzer) History(ctx context.Context, chain, address string, limit int) ([]*models.TokenAnalysis, error) {
	if a.store == nil {
		return nil, fmt.Errorf("analysis history is not enabled")
	}
	chain = string(domrepo.NormalizeChain(chain))
	return a.store.History(ctx, chain, address, limit)
}

// fetchPairs walks the provider chain. Not-found from one provider falls
// through to the next; only a unanimous not-found is reported as such.
func (a *TokenAnalyzer) fetchPairs(ctx context.Context, fetch func(domrepo.MarketDataProvider) ([]models.PairSnapshot, error)) ([]models.PairSnapshot, error) {
	sawNotFound := false
	for _, p := range a.providers {
		pairs, err := fetch(p)
		if err == nil && len(pairs) > 0 {
			a.metrics.RecordUpstream(p.Name(), "ok")
			return pairs, nil
		}
		if err != nil {
			a.metrics.RecordUpstream(p.Name(), "error")
			a.log.Warn("provider fetch failed",
				logger.String("provider", p.Name()),
				logger.Error(err))
			if isNotFound(err) {
				sawNotFound = true
			}
			continue
		}
		sawNotFound = true
	}
	if sawNotFound {
		return nil, ErrTokenNotFound
	}
	return nil, ErrProvidersDown
}

func (a *TokenAnalyzer) scorePair(ctx context.Context, pair models.PairSnapshot) *models.TokenAnalysis {
	started := a.now()

	risk := a.risk.Assess(&pair)
	sentiment := a.sentiment.Analyze(&pair)
	momentum := a.momentum.Score(&pair)
	prediction := a.predictor.Project(&pair, sentiment)
	verdict := a.verdict.Build(&pair, risk, sentiment)

	price := pair.PriceUsdFloat()
	mcap := pair.EffectiveMarketCap()
	liq := pair.LiquidityUsd()

	analysis := &models.TokenAnalysis{
		ChainID:      pair.ChainID,
		TokenAddress: pair.BaseToken.Address,
		TokenSymbol:  pair.BaseToken.Symbol,
		TokenName:    pair.BaseToken.Name,
		PriceUsd:     price,
		MarketCap:    mcap,
		LiquidityUsd: liq,
		Volume24h:    pair.Volume.H24,
		Risk:         risk,
		Sentiment:    sentiment,
		Momentum:     momentum,
		Prediction:   prediction,
		Verdict:      verdict,
		Display: models.DisplayStrings{
			Price:     util.FormatPrice(price),
			MarketCap: util.FormatCurrency(mcap),
			Liquidity: util.FormatCurrency(liq),
			Volume24h: util.FormatCurrency(pair.Volume.H24),
			Address:   util.TruncateAddress(pair.BaseToken.Address),
		},
		AnalyzedAt: started,
	}

	a.metrics.RecordAnalysis(pair.ChainID, verdict.Strength)
	a.metrics.RecordLatency("score_pair", a.now().Sub(started).Seconds())

	a.persist(ctx, analysis)
	return analysis
}

// persist is fire-and-forget: storage or alert failures degrade to logs.
func (a *TokenAnalyzer) persist(ctx context.Context, analysis *models.TokenAnalysis) {
	if a.sink != nil {
		if err := a.sink.Process(ctx, analysis); err != nil {
			a.metrics.RecordError("persist_sink")
			a.log.Warn("persist sink failed", logger.Error(err))
		}
		return
	}
	if a.store != nil {
		if err := a.store.Store(ctx, analysis); err != nil {
			a.metrics.RecordError("store_analysis")
			a.log.Warn("store analysis failed", logger.Error(err))
		}
	}
	if a.alerts != nil && analysis.Risk.Overall.Score >= a.minAlert {
		if err := a.alerts.Publish(ctx, analysis); err != nil {
			a.metrics.RecordError("publish_alert")
			a.log.Warn("publish alert failed", logger.Error(err))
		}
	}
}

// bestPairPerToken dedupes pairs by base token, keeping the deepest pool,
// and orders tokens by that pool's liquidity.
func bestPairPerToken(pairs []models.PairSnapshot) []models.PairSnapshot {
	best := make(map[string]models.PairSnapshot)
	for _, p := range pairs {
		key := p.ChainID + ":" + p.BaseToken.Address
		cur, ok := best[key]
		if !ok || p.LiquidityUsd() > cur.LiquidityUsd() {
			best[key] = p
		}
	}
	out := make([]models.PairSnapshot, 0, len(best))
	for _, p := range best {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LiquidityUsd() > out[j].LiquidityUsd()
	})
	return out
}

func mostLiquid(pairs []models.PairSnapshot) *models.PairSnapshot {
	var best *models.PairSnapshot
	for i := range pairs {
		if best == nil || pairs[i].LiquidityUsd() > best.LiquidityUsd() {
			best = &pairs[i]
		}
	}
	return best
}

func analysisCacheKey(chain, address string) string {
	return "analysis:" + chain + ":" + address
}

func isNotFound(err error) bool {
	return errors.Is(err, domrepo.ErrNotFound)
}
