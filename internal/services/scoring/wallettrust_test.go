package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TokenPulse/internal/domain/models"
)

var walletNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestWalletTrustEstablishedWallet(t *testing.T) {
	s := NewAdditiveWalletTrustScorer()

	res := s.Score(&models.WalletSummary{
		Address:     "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		NetWorthUsd: 500_000,
		TokenCount:  20,
		TxCount:     1_000,
		FirstTxAt:   walletNow.AddDate(-2, 0, 0).UnixMilli(),
	}, walletNow)

	// 40 +15 age +20 worth +10 activity +10 diversification = 95.
	assert.Equal(t, 95, res.TrustScore)
	assert.Equal(t, models.TrustLow, res.RiskLevel)
	assert.Equal(t, "Established Wallet", res.Badge)
	assert.Empty(t, res.RiskFlags)
	assert.Equal(t, "2.0y", res.WalletAge)
}

func TestWalletTrustBurnerWallet(t *testing.T) {
	s := NewAdditiveWalletTrustScorer()

	res := s.Score(&models.WalletSummary{
		Address:     "burner",
		NetWorthUsd: 50,
		TokenCount:  0,
		TxCount:     2,
		FirstTxAt:   walletNow.Add(-48 * time.Hour).UnixMilli(),
	}, walletNow)

	// 40 -15 age -10 worth -10 activity -10 diversification clamps at 0.
	assert.Equal(t, 0, res.TrustScore)
	assert.Equal(t, models.TrustDanger, res.RiskLevel)
	assert.Len(t, res.RiskFlags, 4)
}

func TestWalletTrustNilSummaryIsUnknown(t *testing.T) {
	s := NewAdditiveWalletTrustScorer()

	res := s.Score(nil, walletNow)
	assert.Equal(t, "unknown", res.Status)
	assert.Equal(t, devTrustBaseline, res.TrustScore)
	assert.Equal(t, models.TrustMedium, res.RiskLevel)
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "unknown", formatAge(0))
	assert.Equal(t, "5h", formatAge(5*time.Hour))
	assert.Equal(t, "45d", formatAge(45*24*time.Hour))
	assert.Equal(t, "2.0y", formatAge(730*24*time.Hour))
}
