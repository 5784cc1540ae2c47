package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TokenPulse/internal/domain/models"
)

func TestPredictionBands(t *testing.T) {
	p := NewScenarioPredictor()

	// Turnover 50k/100k = 0.5, *10 = 5, capped at 3; bullish mult 5.
	got := p.Project(&models.PairSnapshot{
		PriceUsd:  "0.002",
		MarketCap: 100_000,
		Volume:    models.PairVolume{H24: 50_000},
	}, models.SentimentSnapshot{})

	assert.True(t, got.Speculative)

	assert.InDelta(t, 0.005, got.Bullish.Price.Low, 1e-9)
	assert.InDelta(t, 0.010, got.Bullish.Price.High, 1e-9)
	assert.InDelta(t, 250_000, got.Bullish.MarketCap.Low, 1e-6)
	assert.InDelta(t, 500_000, got.Bullish.MarketCap.High, 1e-6)

	assert.InDelta(t, 0.001, got.Neutral.Price.Low, 1e-9)
	assert.InDelta(t, 0.003, got.Neutral.Price.High, 1e-9)

	assert.InDelta(t, 0.0001, got.Bearish.Price.Low, 1e-9)
	assert.InDelta(t, 0.0006, got.Bearish.Price.High, 1e-9)
}

func TestPredictionLowTurnoverKeepsBaseMultiplier(t *testing.T) {
	p := NewScenarioPredictor()

	got := p.Project(&models.PairSnapshot{
		PriceUsd:  "1",
		MarketCap: 1_000_000,
		Volume:    models.PairVolume{H24: 0},
	}, models.SentimentSnapshot{})

	assert.InDelta(t, 1, got.Bullish.Price.Low, 1e-9)
	assert.InDelta(t, 2, got.Bullish.Price.High, 1e-9)
}

func TestPredictionMissingMarketCapFallsBackToFdv(t *testing.T) {
	p := NewScenarioPredictor()

	got := p.Project(&models.PairSnapshot{
		PriceUsd: "1",
		Fdv:      200_000,
	}, models.SentimentSnapshot{})

	assert.InDelta(t, 100_000, got.Neutral.MarketCap.Low, 1e-6)
	assert.InDelta(t, 300_000, got.Neutral.MarketCap.High, 1e-6)
}
