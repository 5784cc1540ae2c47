package scoring

import (
	"math"

	"TokenPulse/internal/domain/models"
	domsvc "TokenPulse/internal/domain/service"
)

// ScenarioPredictor derives entertainment-grade price bands from current
// price, market cap and volume turnover. Output is deterministic for a given
// snapshot and always flagged speculative.
type ScenarioPredictor struct{}

func NewScenarioPredictor() *ScenarioPredictor { return &ScenarioPredictor{} }

func (s *ScenarioPredictor) Project(pair *models.PairSnapshot, _ models.SentimentSnapshot) models.Prediction {
	price := pair.PriceUsdFloat()
	mcap := pair.EffectiveMarketCap()

	// Turnover feeds the bullish multiplier, capped so hyperactive pools
	// cannot promise more than a 5x band.
	var activity float64
	if mcap > 0 {
		activity = math.Min(pair.Volume.H24/mcap*10, 3)
	}
	bullMult := 2 + activity

	return models.Prediction{
		Bullish:     scenario(price, mcap, bullMult/2, bullMult),
		Neutral:     scenario(price, mcap, 0.5, 1.5),
		Bearish:     scenario(price, mcap, 0.05, 0.3),
		Speculative: true,
	}
}

func scenario(price, mcap, lowMult, highMult float64) models.Scenario {
	return models.Scenario{
		Price:     models.PriceRange{Low: price * lowMult, High: price * highMult},
		MarketCap: models.PriceRange{Low: mcap * lowMult, High: mcap * highMult},
	}
}

var _ domsvc.Predictor = (*ScenarioPredictor)(nil)
