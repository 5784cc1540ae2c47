package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TokenPulse/internal/domain/models"
)

var devNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func enrichedPair(liq, vol float64, ageHours int, socials bool) *models.PairSnapshot {
	p := &models.PairSnapshot{
		Liquidity: &models.PairLiquidity{Usd: liq},
		Volume:    models.PairVolume{H24: vol},
	}
	if ageHours > 0 {
		p.PairCreatedAt = devNow.Add(-time.Duration(ageHours) * time.Hour).UnixMilli()
	}
	if socials {
		p.Info = &models.PairInfo{Socials: []models.PairSocial{{Type: "twitter", URL: "https://x.com/x"}}}
	}
	return p
}

func TestDevTrustActiveAuthoritiesAndConcentrationFloorToDanger(t *testing.T) {
	s := NewAdditiveDevTrustScorer()

	profile := &models.CreatorProfile{
		Address:              "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		KnownAuthorities:     true,
		MintAuthorityEnabled: true,
		KnownHolders:         true,
		Top10HolderPct:       45,
	}
	// 40 - 50 (mint) - 30 (concentration) + 20 (liquidity) clamps at 0.
	res := s.Score(profile, enrichedPair(60_000, 0, 0, true), devNow)

	assert.Equal(t, 0, res.TrustScore)
	assert.Equal(t, models.TrustDanger, res.RiskLevel)
	assert.Equal(t, "ok", res.Status)
	assert.Contains(t, res.RiskFlags, "Mint authority still enabled")
	assert.Contains(t, res.RiskFlags, "Top 10 holders control over 30% of supply")
	assert.True(t, res.MintAuthorityEnabled)
	assert.False(t, res.FreezeAuthorityEnabled)
}

func TestDevTrustCleanTrackRecordScoresLow(t *testing.T) {
	s := NewAdditiveDevTrustScorer()

	profile := &models.CreatorProfile{
		Address:          "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		KnownAuthorities: true,
		KnownHolders:     true,
		Top10HolderPct:   12,
		KnownHistory:     true,
		CoinsCreated:     3,
		SuccessfulCoins:  3,
	}
	// 40 +20 liq +10 vol +10 age +5 socials +9 history = 94.
	res := s.Score(profile, enrichedPair(60_000, 150_000, 100, true), devNow)

	assert.Equal(t, 94, res.TrustScore)
	assert.Equal(t, models.TrustLow, res.RiskLevel)
	assert.Equal(t, "Trusted Dev", res.Badge)
	assert.Empty(t, res.RiskFlags)
}

func TestDevTrustBlindProfileStaysUnknown(t *testing.T) {
	s := NewAdditiveDevTrustScorer()

	res := s.Score(&models.CreatorProfile{Address: "whatever"}, nil, devNow)

	assert.Equal(t, "unknown", res.Status)
	assert.Equal(t, devTrustBaseline, res.TrustScore)
	assert.Equal(t, models.TrustMedium, res.RiskLevel)
	assert.NotEmpty(t, res.Note)
}

func TestDevTrustFreshPairPenalty(t *testing.T) {
	s := NewAdditiveDevTrustScorer()

	res := s.Score(&models.CreatorProfile{Address: "x"}, enrichedPair(60_000, 0, 0, false), devNow)
	// Age 0 means unknown, no penalty: 40 +20 -5 socials = 55.
	assert.Equal(t, 55, res.TrustScore)

	fresh := enrichedPair(60_000, 0, 0, false)
	fresh.PairCreatedAt = devNow.Add(-30 * time.Minute).UnixMilli()
	res = s.Score(&models.CreatorProfile{Address: "x"}, fresh, devNow)
	// 40 +20 -10 fresh -5 socials = 45.
	assert.Equal(t, 45, res.TrustScore)
	assert.Contains(t, res.RiskFlags, "Pair is less than an hour old")
}

func TestHistoryDeltaClamps(t *testing.T) {
	assert.Equal(t, -30, historyDelta(10, 0))
	assert.Equal(t, 15, historyDelta(0, 10))
	assert.Equal(t, -5, historyDelta(1, 0))
	assert.Equal(t, 3, historyDelta(0, 1))
	assert.Equal(t, 1, historyDelta(1, 2))
}

func TestTrustBuckets(t *testing.T) {
	assert.Equal(t, models.TrustLow, trustBucket(70))
	assert.Equal(t, models.TrustMedium, trustBucket(69))
	assert.Equal(t, models.TrustMedium, trustBucket(40))
	assert.Equal(t, models.TrustDanger, trustBucket(39))
}
