package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TokenPulse/internal/domain/models"
	domrepo "TokenPulse/internal/domain/repository"
	"TokenPulse/internal/services/scoring"
	pkgcache "TokenPulse/pkg/cache"
	"TokenPulse/pkg/logger"
)

type fakeProvider struct {
	name    string
	pairs   []models.PairSnapshot
	err     error
	lookups int
	lastArg string
}

func (f *fakeProvider) Search(_ context.Context, query string) ([]models.PairSnapshot, error) {
	f.lookups++
	f.lastArg = query
	return f.pairs, f.err
}

func (f *fakeProvider) PairsByToken(_ context.Context, chain, address string) ([]models.PairSnapshot, error) {
	f.lookups++
	f.lastArg = chain + "/" + address
	return f.pairs, f.err
}

func (f *fakeProvider) Name() string { return f.name }

type fakeMetrics struct {
	mu       sync.Mutex
	errs     map[string]int
	upstream map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{errs: map[string]int{}, upstream: map[string]int{}}
}

func (m *fakeMetrics) RecordAnalysis(chain, verdict string) {}

func (m *fakeMetrics) RecordUpstream(provider, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upstream[provider+":"+outcome]++
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[kind]++
}

func (m *fakeMetrics) RecordLatency(op string, seconds float64) {}

type captureSink struct {
	mu  sync.Mutex
	got []*models.TokenAnalysis
}

func (s *captureSink) Process(_ context.Context, a *models.TokenAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, a)
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return l
}

func newTestAnalyzer(t *testing.T, providers []domrepo.MarketDataProvider, m domrepo.Metrics, opts ...AnalyzerOption) *TokenAnalyzer {
	t.Helper()
	return NewTokenAnalyzer(
		providers,
		scoring.NewHeuristicRiskScorer(),
		scoring.NewHeuristicSentimentScorer(),
		scoring.NewHeuristicMomentumScorer(),
		scoring.NewScenarioPredictor(),
		scoring.NewRuleVerdictBuilder(),
		nil,
		0,
		m,
		testLogger(t),
		opts...,
	)
}

func snap(chain, address, symbol string, liquidity float64) models.PairSnapshot {
	return models.PairSnapshot{
		ChainID:     chain,
		PairAddress: address + "-pair",
		BaseToken:   models.Token{Address: address, Symbol: symbol, Name: symbol},
		PriceUsd:    "0.001",
		Liquidity:   &models.PairLiquidity{Usd: liquidity},
		Volume:      models.PairVolume{H24: 50_000},
		Txns:        models.PairTxns{H24: models.TxnWindow{Buys: 300, Sells: 200}},
		MarketCap:   900_000,
	}
}

func TestAnalyzeDedupesAndOrdersByLiquidity(t *testing.T) {
	provider := &fakeProvider{
		name: "dexscreener",
		pairs: []models.PairSnapshot{
			snap("solana", "tokA", "AAA", 20_000),
			snap("solana", "tokA", "AAA", 150_000), // deeper pool for same token
			snap("solana", "tokB", "BBB", 400_000),
		},
	}
	a := newTestAnalyzer(t, []domrepo.MarketDataProvider{provider}, newFakeMetrics())

	results, err := a.Analyze(context.Background(), "aaa", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "tokB", results[0].TokenAddress)
	assert.Equal(t, "tokA", results[1].TokenAddress)
	assert.Equal(t, 150_000.0, results[1].LiquidityUsd)
}

func TestAnalyzeRejectsInvalidQueries(t *testing.T) {
	provider := &fakeProvider{name: "dexscreener"}
	a := newTestAnalyzer(t, []domrepo.MarketDataProvider{provider}, newFakeMetrics())

	for _, q := range []string{"", "   ", "wif sol", "wif,sol", "BTC"} {
		_, err := a.Analyze(context.Background(), q, 5)
		var verr *scoring.ValidationError
		assert.ErrorAs(t, err, &verr, "query %q", q)
	}
	assert.Equal(t, 0, provider.lookups)
}

func TestAnalyzeRespectsLimit(t *testing.T) {
	provider := &fakeProvider{
		name: "dexscreener",
		pairs: []models.PairSnapshot{
			snap("solana", "tokA", "AAA", 10),
			snap("solana", "tokB", "BBB", 20),
			snap("solana", "tokC", "CCC", 30),
		},
	}
	a := newTestAnalyzer(t, []domrepo.MarketDataProvider{provider}, newFakeMetrics())

	results, err := a.Analyze(context.Background(), "meme", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestAnalyzeAddressQuerySkipsSearch(t *testing.T) {
	const wrappedSol = "So11111111111111111111111111111111111111112"
	provider := &fakeProvider{
		name:  "dexscreener",
		pairs: []models.PairSnapshot{snap("solana", wrappedSol, "SOL", 1_000_000)},
	}
	a := newTestAnalyzer(t, []domrepo.MarketDataProvider{provider}, newFakeMetrics())

	_, err := a.Analyze(context.Background(), wrappedSol, 5)
	require.NoError(t, err)
	assert.Equal(t, "solana/"+wrappedSol, provider.lastArg)
}

func TestAnalyzeTokenServesFromCache(t *testing.T) {
	provider := &fakeProvider{
		name:  "dexscreener",
		pairs: []models.PairSnapshot{snap("solana", "tokA", "AAA", 50_000)},
	}
	mem := pkgcache.NewMemoryCache()
	defer mem.Close()

	a := NewTokenAnalyzer(
		[]domrepo.MarketDataProvider{provider},
		scoring.NewHeuristicRiskScorer(),
		scoring.NewHeuristicSentimentScorer(),
		scoring.NewHeuristicMomentumScorer(),
		scoring.NewScenarioPredictor(),
		scoring.NewRuleVerdictBuilder(),
		mem,
		0,
		newFakeMetrics(),
		testLogger(t),
	)

	first, err := a.AnalyzeToken(context.Background(), "solana", "tokA")
	require.NoError(t, err)

	second, err := a.AnalyzeToken(context.Background(), "solana", "tokA")
	require.NoError(t, err)

	assert.Equal(t, 1, provider.lookups)
	assert.Equal(t, first.TokenAddress, second.TokenAddress)
	assert.Equal(t, first.Risk.Overall.Score, second.Risk.Overall.Score)
}

func TestFetchPairsFallsThroughToNextProvider(t *testing.T) {
	down := &fakeProvider{name: "dexscreener", err: errors.New("timeout")}
	up := &fakeProvider{
		name:  "geckoterminal",
		pairs: []models.PairSnapshot{snap("solana", "tokA", "AAA", 50_000)},
	}
	m := newFakeMetrics()
	a := newTestAnalyzer(t, []domrepo.MarketDataProvider{down, up}, m)

	res, err := a.AnalyzeToken(context.Background(), "solana", "tokA")
	require.NoError(t, err)
	assert.Equal(t, "tokA", res.TokenAddress)
	assert.Equal(t, 1, m.upstream["dexscreener:error"])
	assert.Equal(t, 1, m.upstream["geckoterminal:ok"])
}

func TestUnanimousNotFound(t *testing.T) {
	a := newTestAnalyzer(t, []domrepo.MarketDataProvider{
		&fakeProvider{name: "dexscreener", err: fmt.Errorf("no pairs: %w", domrepo.ErrNotFound)},
		&fakeProvider{name: "geckoterminal"}, // empty result, also a miss
	}, newFakeMetrics())

	_, err := a.AnalyzeToken(context.Background(), "solana", "tokZ")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestAllProvidersDown(t *testing.T) {
	a := newTestAnalyzer(t, []domrepo.MarketDataProvider{
		&fakeProvider{name: "dexscreener", err: errors.New("503")},
		&fakeProvider{name: "geckoterminal", err: errors.New("refused")},
	}, newFakeMetrics())

	_, err := a.AnalyzeToken(context.Background(), "solana", "tokZ")
	assert.ErrorIs(t, err, ErrProvidersDown)
}

func TestPersistRoutesThroughSink(t *testing.T) {
	provider := &fakeProvider{
		name:  "dexscreener",
		pairs: []models.PairSnapshot{snap("solana", "tokA", "AAA", 50_000)},
	}
	sink := &captureSink{}
	a := newTestAnalyzer(t, []domrepo.MarketDataProvider{provider}, newFakeMetrics(),
		WithPersistSink(sink))

	_, err := a.AnalyzeToken(context.Background(), "solana", "tokA")
	require.NoError(t, err)
	require.Len(t, sink.got, 1)
	assert.Equal(t, "tokA", sink.got[0].TokenAddress)
}
