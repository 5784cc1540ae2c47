package scoring

import (
	"math"

	"TokenPulse/internal/domain/models"
	domsvc "TokenPulse/internal/domain/service"
)

// Weighted contributions to the overall risk score.
const (
	weightRugPull    = 0.30
	weightLiquidity  = 0.25
	weightHolders    = 0.25
	weightVolatility = 0.20
)

// HeuristicRiskScorer derives risk categories from liquidity depth, price
// swings and transaction activity. All thresholds are strict less-than, so
// a pool holding exactly $10,000 lands in the MEDIUM tier.
type HeuristicRiskScorer struct{}

func NewHeuristicRiskScorer() *HeuristicRiskScorer { return &HeuristicRiskScorer{} }

func (s *HeuristicRiskScorer) Assess(pair *models.PairSnapshot) models.RiskAssessment {
	liq := pair.LiquidityUsd()
	ch24 := pair.PriceChange.H24
	txns := pair.TotalTxns24h()

	var a models.RiskAssessment

	switch {
	case liq < 10_000:
		a.Liquidity = models.RiskCategory{Level: models.RiskHigh, Score: 9}
		a.RugPull = models.RiskCategory{Level: models.RiskHigh, Score: 8}
	case liq < 100_000:
		a.Liquidity = models.RiskCategory{Level: models.RiskMedium, Score: 6}
		a.RugPull = models.RiskCategory{Level: models.RiskMedium, Score: 5}
	default:
		a.Liquidity = models.RiskCategory{Level: models.RiskLow, Score: 2}
		a.RugPull = models.RiskCategory{Level: models.RiskLow, Score: 2}
	}

	switch {
	case math.Abs(ch24) > 50:
		a.Volatility = models.RiskCategory{Level: models.RiskHigh, Score: 9}
	case math.Abs(ch24) > 20:
		a.Volatility = models.RiskCategory{Level: models.RiskMedium, Score: 6}
	default:
		a.Volatility = models.RiskCategory{Level: models.RiskLow, Score: 3}
	}

	switch {
	case txns < 50:
		a.HolderConcentration = models.RiskCategory{Level: models.RiskHigh, Score: 8}
	case txns < 200:
		a.HolderConcentration = models.RiskCategory{Level: models.RiskMedium, Score: 5}
	default:
		a.HolderConcentration = models.RiskCategory{Level: models.RiskLow, Score: 3}
	}

	overall := int(math.Round(
		float64(a.RugPull.Score)*weightRugPull +
			float64(a.Liquidity.Score)*weightLiquidity +
			float64(a.HolderConcentration.Score)*weightHolders +
			float64(a.Volatility.Score)*weightVolatility))
	a.Overall = models.RiskCategory{Level: riskBucket(overall), Score: overall}
	return a
}

// riskBucket maps a weighted 0-10 score onto the three public levels.
func riskBucket(score int) models.RiskLevel {
	switch {
	case score >= 7:
		return models.RiskHigh
	case score >= 4:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

var _ domsvc.RiskScorer = (*HeuristicRiskScorer)(nil)
