package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TokenPulse/internal/domain/models"
)

func TestSentimentVolumeTrend(t *testing.T) {
	s := NewHeuristicSentimentScorer()

	tests := []struct {
		name string
		h1   float64
		h24  float64
		want string
	}{
		{"hour pacing double the day", 200, 2_400, "Increasing"},
		{"hour pacing under half the day", 40, 2_400, "Decreasing"},
		{"even pacing", 100, 2_400, "Stable"},
		{"missing h1 backfills to even pacing", 0, 2_400, "Stable"},
		{"dead pair", 0, 0, "Stable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := s.Analyze(&models.PairSnapshot{
				Volume: models.PairVolume{H1: tt.h1, H24: tt.h24},
			})
			assert.Equal(t, tt.want, snap.VolumeTrend)
		})
	}
}

func TestSentimentWhaleActivity(t *testing.T) {
	s := NewHeuristicSentimentScorer()

	tests := []struct {
		name      string
		buys      int
		sells     int
		wantLabel string
		wantRatio float64
	}{
		{"heavy buying", 300, 100, "Accumulation", 3},
		{"heavy selling", 40, 100, "Distribution", 0.4},
		{"balanced", 100, 100, "Neutral", 1},
		{"no sells counts buys as ratio", 5, 0, "Accumulation", 5},
		{"no activity at all", 0, 0, "Distribution", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := s.Analyze(&models.PairSnapshot{
				Txns: models.PairTxns{H24: models.TxnWindow{Buys: tt.buys, Sells: tt.sells}},
			})
			assert.Equal(t, tt.wantLabel, snap.WhaleActivity)
			assert.InDelta(t, tt.wantRatio, snap.BuySellRatio, 1e-9)
		})
	}
}

func TestSentimentHypeLevel(t *testing.T) {
	s := NewHeuristicSentimentScorer()

	tests := []struct {
		name  string
		buys  int
		sells int
		vol   float64
		want  string
	}{
		{"busy and liquid", 800, 400, 150_000, "High"},
		{"busy but thin volume", 800, 400, 50_000, "Medium"},
		{"few transactions", 40, 40, 50_000, "Low"},
		{"tiny volume", 200, 200, 5_000, "Low"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := s.Analyze(&models.PairSnapshot{
				Txns:   models.PairTxns{H24: models.TxnWindow{Buys: tt.buys, Sells: tt.sells}},
				Volume: models.PairVolume{H24: tt.vol},
			})
			assert.Equal(t, tt.want, snap.HypeLevel)
		})
	}
}

func TestSentimentVolatilityScalesShortWindows(t *testing.T) {
	s := NewHeuristicSentimentScorer()

	// 3% in an hour projects to 72% over a day.
	snap := s.Analyze(&models.PairSnapshot{
		PriceChange: models.PairPriceChange{H1: 3, H6: 1, H24: 8},
	})
	assert.Equal(t, "High", snap.Volatility)

	snap = s.Analyze(&models.PairSnapshot{
		PriceChange: models.PairPriceChange{H1: 0.2, H6: 1, H24: 5},
	})
	assert.Equal(t, "Low", snap.Volatility)

	snap = s.Analyze(&models.PairSnapshot{
		PriceChange: models.PairPriceChange{H24: 30},
	})
	assert.Equal(t, "Medium", snap.Volatility)
}

func TestSentimentTrendDirection(t *testing.T) {
	s := NewHeuristicSentimentScorer()

	tests := []struct {
		name string
		ch24 float64
		ch6  float64
		want string
	}{
		{"up and still climbing", 15, 2, "Bullish"},
		{"down and still falling", -15, -1, "Bearish"},
		{"up on the day but rolling over", 15, -1, "Neutral"},
		{"small move", 5, 5, "Neutral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := s.Analyze(&models.PairSnapshot{
				PriceChange: models.PairPriceChange{H24: tt.ch24, H6: tt.ch6},
			})
			assert.Equal(t, tt.want, snap.TrendDirection)
		})
	}
}
