package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TokenPulse/internal/domain/models"
)

func TestMomentumDeadPairScoresBaseOnly(t *testing.T) {
	s := NewHeuristicMomentumScorer()

	// No volume, no txns, no move: 0 + 0 + 15 (ratio fallback) + 0 + 25.
	got := s.Score(&models.PairSnapshot{})
	assert.Equal(t, 40, got.Score)
	assert.Equal(t, "Weak", got.Label)
}

func TestMomentumCapsEveryComponent(t *testing.T) {
	s := NewHeuristicMomentumScorer()

	got := s.Score(&models.PairSnapshot{
		Volume:      models.PairVolume{H24: 10_000_000},
		Txns:        models.PairTxns{H24: models.TxnWindow{Buys: 5_000, Sells: 500}},
		PriceChange: models.PairPriceChange{H24: 200},
	})
	// 30 + 25 + 25 + 20 + 25 would be 125; clamped to 100.
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, "Strong", got.Label)
}

func TestMomentumNegativeMoveIsFloorLimited(t *testing.T) {
	s := NewHeuristicMomentumScorer()

	down := s.Score(&models.PairSnapshot{
		PriceChange: models.PairPriceChange{H24: -90},
	})
	flat := s.Score(&models.PairSnapshot{})
	// -90 * 0.3 = -27, floored at -10.
	assert.Equal(t, flat.Score-10, down.Score)
}

func TestMomentumBuyPressureComponent(t *testing.T) {
	s := NewHeuristicMomentumScorer()

	buyers := s.Score(&models.PairSnapshot{
		Txns: models.PairTxns{H24: models.TxnWindow{Buys: 200, Sells: 100}},
	})
	sellers := s.Score(&models.PairSnapshot{
		Txns: models.PairTxns{H24: models.TxnWindow{Buys: 100, Sells: 200}},
	})
	assert.Greater(t, buyers.Score, sellers.Score)
}

func TestMomentumLabels(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{85, "Strong"},
		{70, "Strong"},
		{69, "Moderate"},
		{50, "Moderate"},
		{49, "Weak"},
		{30, "Weak"},
		{29, "Very Weak"},
		{0, "Very Weak"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, momentumLabel(tt.score), "score %d", tt.score)
	}
}
