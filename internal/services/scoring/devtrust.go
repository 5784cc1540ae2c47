package scoring

import (
	"time"

	"TokenPulse/internal/domain/models"
	domsvc "TokenPulse/internal/domain/service"
)

// Developer trust starts from a neutral baseline and moves by additive
// deltas. Enrichment lookups fail independently, so each block only applies
// when its Known* flag is set; a fully blind profile keeps the baseline and
// reports status "unknown".
const devTrustBaseline = 40

type AdditiveDevTrustScorer struct{}

func NewAdditiveDevTrustScorer() *AdditiveDevTrustScorer { return &AdditiveDevTrustScorer{} }

func (s *AdditiveDevTrustScorer) Score(profile *models.CreatorProfile, pair *models.PairSnapshot, now time.Time) models.DevTrustResult {
	res := models.DevTrustResult{
		Address:    profile.Address,
		Status:     "ok",
		RiskFlags:  []string{},
		ComputedAt: now,
	}

	score := devTrustBaseline
	anyKnown := false

	if profile.KnownAuthorities {
		anyKnown = true
		res.MintAuthorityEnabled = profile.MintAuthorityEnabled
		res.FreezeAuthorityEnabled = profile.FreezeAuthorityEnabled
		if profile.MintAuthorityEnabled {
			score -= 50
			res.RiskFlags = append(res.RiskFlags, "Mint authority still enabled")
		}
		if profile.FreezeAuthorityEnabled {
			score -= 50
			res.RiskFlags = append(res.RiskFlags, "Freeze authority still enabled")
		}
	}

	if profile.KnownHolders {
		anyKnown = true
		res.Top10HolderPct = profile.Top10HolderPct
		if profile.Top10HolderPct > 30 {
			score -= 30
			res.RiskFlags = append(res.RiskFlags, "Top 10 holders control over 30% of supply")
		}
	}

	if pair != nil {
		anyKnown = true
		liq := pair.LiquidityUsd()
		switch {
		case liq > 50_000:
			score += 20
		case liq >= 10_000:
			score += 10
		case liq < 1_000:
			score -= 10
			res.RiskFlags = append(res.RiskFlags, "Liquidity under $1k")
		}

		switch vol := pair.Volume.H24; {
		case vol > 100_000:
			score += 10
		case vol > 10_000:
			score += 5
		}

		switch age := pair.Age(now); {
		case age > 72*time.Hour:
			score += 10
		case age > 24*time.Hour:
			score += 5
		case age > 0 && age < time.Hour:
			score -= 10
			res.RiskFlags = append(res.RiskFlags, "Pair is less than an hour old")
		}

		if pair.HasSocials() {
			score += 5
		} else {
			score -= 5
		}
	}

	if profile.KnownHistory {
		anyKnown = true
		res.CoinsCreated = profile.CoinsCreated
		res.RuggedCoins = profile.RuggedCoins
		res.SuccessfulCoins = profile.SuccessfulCoins
		res.AvgPeakMarketCap = profile.AvgPeakMarketCap
		score += historyDelta(profile.RuggedCoins, profile.SuccessfulCoins)
		if profile.RuggedCoins > 0 {
			res.RiskFlags = append(res.RiskFlags, "Creator has rugged tokens on record")
		}
	}

	if !anyKnown {
		res.Status = "unknown"
		res.Note = "no on-chain data could be resolved for this address"
	}

	res.TrustScore = clampScore(score)
	res.RiskLevel = trustBucket(res.TrustScore)
	res.Badge, res.BadgeClass = trustBadge(res.RiskLevel)
	return res
}

// historyDelta penalises rugs harder than it rewards wins, clamped so one
// prolific serial deployer cannot saturate the whole score.
func historyDelta(rugged, successful int) int {
	d := successful*3 - rugged*5
	if d > 15 {
		return 15
	}
	if d < -30 {
		return -30
	}
	return d
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func trustBucket(score int) models.TrustLevel {
	switch {
	case score >= 70:
		return models.TrustLow
	case score >= 40:
		return models.TrustMedium
	default:
		return models.TrustDanger
	}
}

func trustBadge(level models.TrustLevel) (badge, class string) {
	switch level {
	case models.TrustLow:
		return "Trusted Dev", "trusted"
	case models.TrustMedium:
		return "Unproven Dev", "caution"
	default:
		return "High Risk Dev", "danger"
	}
}

var _ domsvc.DevTrustScorer = (*AdditiveDevTrustScorer)(nil)
