package scoring

import (
	"math"

	"TokenPulse/internal/domain/models"
	domsvc "TokenPulse/internal/domain/service"
)

// HeuristicMomentumScorer composes a 0-100 intensity score from four capped
// components plus a fixed base of 25. Volume and transaction counts go
// through log10 so the scale works from micro-caps to majors.
type HeuristicMomentumScorer struct{}

func NewHeuristicMomentumScorer() *HeuristicMomentumScorer { return &HeuristicMomentumScorer{} }

func (s *HeuristicMomentumScorer) Score(pair *models.PairSnapshot) models.MomentumScore {
	vol := pair.Volume.H24
	txns := float64(pair.TotalTxns24h())
	buys := float64(pair.Txns.H24.Buys)
	sells := float64(pair.Txns.H24.Sells)
	pc := pair.PriceChange.H24

	volComp := math.Min(30, math.Log10(vol+1)*5)
	txnComp := math.Min(25, math.Log10(txns+1)*8)

	// No sells at all is ambiguous (fresh pool or thin book), score it flat.
	ratioComp := 15.0
	if sells > 0 {
		ratioComp = math.Min(25, (buys/sells)*10)
	}

	var priceComp float64
	if pc > 0 {
		priceComp = math.Min(20, pc*0.5)
	} else {
		priceComp = math.Max(-10, pc*0.3)
	}

	score := volComp + txnComp + ratioComp + priceComp + 25
	score = math.Max(0, math.Min(100, score))

	n := int(math.Round(score))
	return models.MomentumScore{Score: n, Label: momentumLabel(n)}
}

func momentumLabel(score int) string {
	switch {
	case score >= 70:
		return "Strong"
	case score >= 50:
		return "Moderate"
	case score >= 30:
		return "Weak"
	default:
		return "Very Weak"
	}
}

var _ domsvc.MomentumScorer = (*HeuristicMomentumScorer)(nil)
