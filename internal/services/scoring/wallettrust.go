package scoring

import (
	"fmt"
	"time"

	"TokenPulse/internal/domain/models"
	domsvc "TokenPulse/internal/domain/service"
)

// AdditiveWalletTrustScorer scores a wallet address rather than a token.
// Same additive design as the developer scorer but weighted on wallet age,
// net worth, activity and diversification.
type AdditiveWalletTrustScorer struct{}

func NewAdditiveWalletTrustScorer() *AdditiveWalletTrustScorer {
	return &AdditiveWalletTrustScorer{}
}

func (s *AdditiveWalletTrustScorer) Score(summary *models.WalletSummary, now time.Time) models.WalletTrustResult {
	res := models.WalletTrustResult{
		Status:     "ok",
		RiskFlags:  []string{},
		ComputedAt: now,
	}
	if summary == nil {
		res.Status = "unknown"
		res.Note = "no wallet data could be resolved for this address"
		res.TrustScore = devTrustBaseline
		res.RiskLevel = trustBucket(res.TrustScore)
		res.Badge, res.BadgeClass = walletBadge(res.RiskLevel)
		return res
	}

	res.Address = summary.Address
	res.NetWorthUsd = summary.NetWorthUsd
	res.TokenCount = summary.TokenCount
	res.TxCount = summary.TxCount

	score := devTrustBaseline

	age := walletAge(summary.FirstTxAt, now)
	res.WalletAge = formatAge(age)
	switch {
	case age > 180*24*time.Hour:
		score += 15
	case age > 30*24*time.Hour:
		score += 5
	case age > 0 && age < 7*24*time.Hour:
		score -= 15
		res.RiskFlags = append(res.RiskFlags, "Wallet is less than a week old")
	}

	switch {
	case summary.NetWorthUsd > 100_000:
		score += 20
	case summary.NetWorthUsd > 10_000:
		score += 10
	case summary.NetWorthUsd < 100:
		score -= 10
		res.RiskFlags = append(res.RiskFlags, "Net worth under $100")
	}

	switch {
	case summary.TxCount > 500:
		score += 10
	case summary.TxCount > 50:
		score += 5
	case summary.TxCount < 5:
		score -= 10
		res.RiskFlags = append(res.RiskFlags, "Almost no transaction history")
	}

	switch {
	case summary.TokenCount > 10:
		score += 10
	case summary.TokenCount > 3:
		score += 5
	case summary.TokenCount == 0:
		score -= 10
		res.RiskFlags = append(res.RiskFlags, "Holds no tokens")
	}

	res.TrustScore = clampScore(score)
	res.RiskLevel = trustBucket(res.TrustScore)
	res.Badge, res.BadgeClass = walletBadge(res.RiskLevel)
	return res
}

func walletAge(firstTxMs int64, now time.Time) time.Duration {
	if firstTxMs <= 0 {
		return 0
	}
	first := time.UnixMilli(firstTxMs)
	if first.After(now) {
		return 0
	}
	return now.Sub(first)
}

func formatAge(d time.Duration) string {
	if d <= 0 {
		return "unknown"
	}
	days := int(d.Hours() / 24)
	if days < 1 {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	if days < 365 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%.1fy", float64(days)/365)
}

func walletBadge(level models.TrustLevel) (badge, class string) {
	switch level {
	case models.TrustLow:
		return "Established Wallet", "trusted"
	case models.TrustMedium:
		return "Average Wallet", "caution"
	default:
		return "Suspicious Wallet", "danger"
	}
}

var _ domsvc.WalletTrustScorer = (*AdditiveWalletTrustScorer)(nil)
