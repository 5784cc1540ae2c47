package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TokenPulse/internal/domain/models"
	domrepo "TokenPulse/internal/domain/repository"
	icache "TokenPulse/internal/service/cache"
	"TokenPulse/internal/services/scoring"
	"TokenPulse/internal/usecase"
	applogger "TokenPulse/pkg/logger"
)

type stubProvider struct {
	pairs []models.PairSnapshot
	calls int
}

func (s *stubProvider) Search(context.Context, string) ([]models.PairSnapshot, error) {
	s.calls++
	return s.pairs, nil
}

func (s *stubProvider) PairsByToken(context.Context, string, string) ([]models.PairSnapshot, error) {
	s.calls++
	return s.pairs, nil
}

func (s *stubProvider) Name() string { return "stub" }

type noopMetrics struct{}

func (noopMetrics) RecordAnalysis(string, string) {}
func (noopMetrics) RecordUpstream(string, string) {}
func (noopMetrics) RecordError(string)            {}
func (noopMetrics) RecordLatency(string, float64) {}

func testAnalyzer(provider *stubProvider) *usecase.TokenAnalyzer {
	l, _ := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	return usecase.NewTokenAnalyzer(
		[]domrepo.MarketDataProvider{provider},
		scoring.NewHeuristicRiskScorer(),
		scoring.NewHeuristicSentimentScorer(),
		scoring.NewHeuristicMomentumScorer(),
		scoring.NewScenarioPredictor(),
		scoring.NewRuleVerdictBuilder(),
		nil,
		0,
		noopMetrics{},
		l,
	)
}

func TestTokensHandlerAnalyze(t *testing.T) {
	provider := &stubProvider{pairs: []models.PairSnapshot{{
		ChainID:   "solana",
		BaseToken: models.Token{Address: "tokA", Symbol: "AAA", Name: "Token A"},
		PriceUsd:  "0.002",
		Liquidity: &models.PairLiquidity{Usd: 250_000},
		Volume:    models.PairVolume{H24: 80_000},
		Txns:      models.PairTxns{H24: models.TxnWindow{Buys: 400, Sells: 300}},
		MarketCap: 1_200_000,
	}}}
	h := NewTokensHandler(testAnalyzer(provider), nil)
	h.SetCache(icache.NewTTLCache())

	req := httptest.NewRequest(http.MethodGet, "/tokens/analyze?q=aaa", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	h.Analyze()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out []models.TokenAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "tokA", out[0].TokenAddress)

	// Second hit comes from the byte cache, not the provider.
	rec2 := httptest.NewRecorder()
	h.Analyze()(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, 1, provider.calls)
	assert.JSONEq(t, rec.Body.String(), rec2.Body.String())
}

func TestTokensHandlerAnalyzeRequiresQuery(t *testing.T) {
	h := NewTokensHandler(testAnalyzer(&stubProvider{}), nil)

	req := httptest.NewRequest(http.MethodGet, "/tokens/analyze", nil)
	rec := httptest.NewRecorder()
	h.Analyze()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
