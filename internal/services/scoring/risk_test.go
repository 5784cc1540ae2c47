package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TokenPulse/internal/domain/models"
)

func pairWith(liqUsd, ch24 float64, buys, sells int) *models.PairSnapshot {
	return &models.PairSnapshot{
		Liquidity:   &models.PairLiquidity{Usd: liqUsd},
		PriceChange: models.PairPriceChange{H24: ch24},
		Txns: models.PairTxns{
			H24: models.TxnWindow{Buys: buys, Sells: sells},
		},
	}
}

func TestRiskLiquidityTiers(t *testing.T) {
	s := NewHeuristicRiskScorer()

	tests := []struct {
		name      string
		liquidity float64
		wantLevel models.RiskLevel
		wantScore int
		wantRug   int
	}{
		{"under 10k is high", 9_999, models.RiskHigh, 9, 8},
		{"exactly 10k is medium", 10_000, models.RiskMedium, 6, 5},
		{"mid pool is medium", 55_000, models.RiskMedium, 6, 5},
		{"exactly 100k is low", 100_000, models.RiskLow, 2, 2},
		{"deep pool is low", 2_500_000, models.RiskLow, 2, 2},
		{"missing liquidity block is high", 0, models.RiskHigh, 9, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := s.Assess(pairWith(tt.liquidity, 0, 0, 0))
			assert.Equal(t, tt.wantLevel, a.Liquidity.Level)
			assert.Equal(t, tt.wantScore, a.Liquidity.Score)
			assert.Equal(t, tt.wantRug, a.RugPull.Score)
		})
	}
}

func TestRiskVolatilityTiers(t *testing.T) {
	s := NewHeuristicRiskScorer()

	tests := []struct {
		name      string
		change24h float64
		wantLevel models.RiskLevel
		wantScore int
	}{
		{"big pump", 75, models.RiskHigh, 9},
		{"big dump", -75, models.RiskHigh, 9},
		{"exactly 50 stays medium", 50, models.RiskMedium, 6},
		{"moderate move", 35, models.RiskMedium, 6},
		{"exactly 20 stays low", 20, models.RiskLow, 3},
		{"quiet day", 3, models.RiskLow, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := s.Assess(pairWith(500_000, tt.change24h, 500, 500))
			assert.Equal(t, tt.wantLevel, a.Volatility.Level)
			assert.Equal(t, tt.wantScore, a.Volatility.Score)
		})
	}
}

func TestRiskHolderConcentrationUsesTxnProxy(t *testing.T) {
	s := NewHeuristicRiskScorer()

	a := s.Assess(pairWith(500_000, 0, 20, 29)) // 49 txns
	assert.Equal(t, models.RiskHigh, a.HolderConcentration.Level)
	assert.Equal(t, 8, a.HolderConcentration.Score)

	a = s.Assess(pairWith(500_000, 0, 25, 25)) // exactly 50
	assert.Equal(t, models.RiskMedium, a.HolderConcentration.Level)
	assert.Equal(t, 5, a.HolderConcentration.Score)

	a = s.Assess(pairWith(500_000, 0, 150, 150))
	assert.Equal(t, models.RiskLow, a.HolderConcentration.Level)
	assert.Equal(t, 3, a.HolderConcentration.Score)
}

func TestRiskOverallWeighting(t *testing.T) {
	s := NewHeuristicRiskScorer()

	tests := []struct {
		name      string
		pair      *models.PairSnapshot
		wantScore int
		wantLevel models.RiskLevel
	}{
		{
			// rug 8*.30 + liq 9*.25 + holders 8*.25 + vol 9*.20 = 8.45 -> 8
			name:      "fresh illiquid pumper",
			pair:      pairWith(5_000, 60, 10, 20),
			wantScore: 8,
			wantLevel: models.RiskHigh,
		},
		{
			// rug 2*.30 + liq 2*.25 + holders 3*.25 + vol 3*.20 = 2.45 -> 2
			name:      "settled deep pool",
			pair:      pairWith(200_000, 5, 250, 250),
			wantScore: 2,
			wantLevel: models.RiskLow,
		},
		{
			// rug 5*.30 + liq 6*.25 + holders 5*.25 + vol 6*.20 = 5.45 -> 5
			name:      "middling everything",
			pair:      pairWith(50_000, 30, 50, 50),
			wantScore: 5,
			wantLevel: models.RiskMedium,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := s.Assess(tt.pair)
			assert.Equal(t, tt.wantScore, a.Overall.Score)
			assert.Equal(t, tt.wantLevel, a.Overall.Level)
		})
	}
}
