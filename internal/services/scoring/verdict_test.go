package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TokenPulse/internal/domain/models"
)

func TestVerdictStrong(t *testing.T) {
	b := NewRuleVerdictBuilder()

	pair := pairWith(150_000, 5, 250, 250)
	risk := NewHeuristicRiskScorer().Assess(pair)
	sent := models.SentimentSnapshot{TrendDirection: "Bullish", VolumeTrend: "Increasing"}

	v := b.Build(pair, risk, sent)
	assert.Equal(t, "Strong", v.Strength)
	assert.Equal(t, risk.Overall.Score, v.RiskScore)
	assert.Equal(t, models.RiskLow, v.RiskLevel)
	assert.Contains(t, v.Summary, "trending up")
	assert.Contains(t, v.Summary, "picking up")
}

func TestVerdictWeakOnThinLiquidity(t *testing.T) {
	b := NewRuleVerdictBuilder()

	// Score alone would be moderate; sub-10k liquidity forces Weak.
	pair := pairWith(5_000, 5, 250, 250)
	risk := NewHeuristicRiskScorer().Assess(pair)
	assert.Less(t, risk.Overall.Score, 7)

	v := b.Build(pair, risk, models.SentimentSnapshot{TrendDirection: "Neutral", VolumeTrend: "Stable"})
	assert.Equal(t, "Weak", v.Strength)
	assert.Contains(t, v.Summary, "sideways")
	assert.Contains(t, v.Summary, "holding steady")
}

func TestVerdictWeakOnHighScore(t *testing.T) {
	b := NewRuleVerdictBuilder()

	pair := pairWith(15_000, 80, 10, 10)
	risk := NewHeuristicRiskScorer().Assess(pair)
	assert.GreaterOrEqual(t, risk.Overall.Score, 7)

	v := b.Build(pair, risk, models.SentimentSnapshot{TrendDirection: "Bearish", VolumeTrend: "Decreasing"})
	assert.Equal(t, "Weak", v.Strength)
	assert.Contains(t, v.Summary, "trending down")
	assert.Contains(t, v.Summary, "fading")
}

func TestVerdictModerateOtherwise(t *testing.T) {
	b := NewRuleVerdictBuilder()

	pair := pairWith(50_000, 30, 50, 50)
	risk := NewHeuristicRiskScorer().Assess(pair)

	v := b.Build(pair, risk, models.SentimentSnapshot{TrendDirection: "Neutral", VolumeTrend: "Stable"})
	assert.Equal(t, "Moderate", v.Strength)
	assert.NotEmpty(t, v.SuitableFor)
}
