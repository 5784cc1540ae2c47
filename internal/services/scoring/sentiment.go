package scoring

import (
	"math"

	"TokenPulse/internal/domain/models"
	domsvc "TokenPulse/internal/domain/service"
)

// HeuristicSentimentScorer classifies trading activity from windowed volume,
// buy/sell counts and price change. Upstream feeds frequently omit the 1h
// volume window, so a missing h1 is backfilled from h24 assuming an even
// spread before the trend ratio runs.
type HeuristicSentimentScorer struct{}

func NewHeuristicSentimentScorer() *HeuristicSentimentScorer { return &HeuristicSentimentScorer{} }

func (s *HeuristicSentimentScorer) Analyze(pair *models.PairSnapshot) models.SentimentSnapshot {
	h24 := pair.Volume.H24
	h1 := pair.Volume.H1
	if h1 == 0 && h24 > 0 {
		h1 = h24 / 24
	}

	buys := pair.Txns.H24.Buys
	sells := pair.Txns.H24.Sells
	txns := buys + sells

	snap := models.SentimentSnapshot{
		VolumeTrend:      volumeTrend(h1, h24),
		TransactionCount: txns,
	}

	// sells=0 with buys present reads as pure accumulation.
	ratio := float64(buys)
	if sells > 0 {
		ratio = float64(buys) / float64(sells)
	}
	snap.BuySellRatio = ratio
	switch {
	case ratio > 2:
		snap.WhaleActivity = "Accumulation"
	case ratio < 0.5:
		snap.WhaleActivity = "Distribution"
	default:
		snap.WhaleActivity = "Neutral"
	}

	switch {
	case txns > 1000 && h24 > 100_000:
		snap.HypeLevel = "High"
	case txns < 100 || h24 < 10_000:
		snap.HypeLevel = "Low"
	default:
		snap.HypeLevel = "Medium"
	}

	// Short windows are annualised to the day so a fast 1h move registers.
	vol := math.Max(math.Abs(pair.PriceChange.H24),
		math.Max(math.Abs(pair.PriceChange.H6)*4, math.Abs(pair.PriceChange.H1)*24))
	switch {
	case vol > 50:
		snap.Volatility = "High"
	case vol < 10:
		snap.Volatility = "Low"
	default:
		snap.Volatility = "Medium"
	}

	ch24 := pair.PriceChange.H24
	ch6 := pair.PriceChange.H6
	switch {
	case ch24 > 10 && ch6 > 0:
		snap.TrendDirection = "Bullish"
	case ch24 < -10 && ch6 < 0:
		snap.TrendDirection = "Bearish"
	default:
		snap.TrendDirection = "Neutral"
	}

	return snap
}

// volumeTrend projects the last hour across a day and compares against the
// realised 24h volume. A dead pair (both zero) is Stable, not Decreasing.
func volumeTrend(h1, h24 float64) string {
	if h24 == 0 {
		return "Stable"
	}
	projected := h1 * 24
	ratio := projected / h24
	switch {
	case ratio > 1.5:
		return "Increasing"
	case ratio < 0.5:
		return "Decreasing"
	default:
		return "Stable"
	}
}

var _ domsvc.SentimentScorer = (*HeuristicSentimentScorer)(nil)
