package scoring

import (
	"TokenPulse/internal/domain/models"
	domsvc "TokenPulse/internal/domain/service"
)

// RuleVerdictBuilder combines the overall risk score with liquidity depth
// into a terminal call. The Strong gate is checked first so a deep-liquidity
// token with a borderline score is not demoted by the Weak disjunction.
type RuleVerdictBuilder struct{}

func NewRuleVerdictBuilder() *RuleVerdictBuilder { return &RuleVerdictBuilder{} }

func (b *RuleVerdictBuilder) Build(pair *models.PairSnapshot, risk models.RiskAssessment, sentiment models.SentimentSnapshot) models.Verdict {
	overall := risk.Overall.Score
	liq := pair.LiquidityUsd()

	v := models.Verdict{
		RiskScore: overall,
		RiskLevel: risk.Overall.Level,
	}

	switch {
	case overall <= 4 && liq >= 100_000:
		v.Strength = "Strong"
		v.SuitableFor = []string{"Swing traders", "Longer-term holders"}
		v.Summary = "Solid liquidity and a contained risk profile."
	case overall >= 7 || liq < 10_000:
		v.Strength = "Weak"
		v.SuitableFor = []string{"High-risk speculators only"}
		v.Summary = "Thin liquidity or elevated risk. Assume the full position can be lost."
	default:
		v.Strength = "Moderate"
		v.SuitableFor = []string{"Experienced traders with strict sizing"}
		v.Summary = "Mixed signals. Tradeable but demands active management."
	}

	v.Summary += trendSentence(sentiment.TrendDirection)
	v.Summary += volumeSentence(sentiment.VolumeTrend)
	return v
}

func trendSentence(direction string) string {
	switch direction {
	case "Bullish":
		return " Price action is trending up."
	case "Bearish":
		return " Price action is trending down."
	default:
		return " Price action is moving sideways."
	}
}

func volumeSentence(trend string) string {
	switch trend {
	case "Increasing":
		return " Volume is picking up."
	case "Decreasing":
		return " Volume is fading."
	default:
		return " Volume is holding steady."
	}
}

var _ domsvc.VerdictBuilder = (*RuleVerdictBuilder)(nil)
