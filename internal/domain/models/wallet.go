package models

import "time"

// WalletSummary is the portfolio view returned by the wallet-data provider.
type WalletSummary struct {
	Address        string  `json:"address"`
	NetWorthUsd    float64 `json:"netWorthUsd"`
	TokenCount     int     `json:"tokenCount"`
	TxCount        int     `json:"txCount"`
	FirstTxAt      int64   `json:"firstTxAt"` // epoch ms, 0 when unknown
	SolBalance     float64 `json:"solBalance"`
}

// WalletTrustResult is the derived trust view for a wallet address.
// Same design as DevTrustResult but with a wallet-specific weighting table
// (age, net worth, activity, diversification).
type WalletTrustResult struct {
	Address    string     `json:"address"`
	TrustScore int        `json:"trustScore"` // 0-100
	RiskLevel  TrustLevel `json:"riskLevel"`
	RiskFlags  []string   `json:"riskFlags"`
	Badge      string     `json:"badge"`
	BadgeClass string     `json:"badgeClass"`

	NetWorthUsd float64   `json:"netWorthUsd"`
	TokenCount  int       `json:"tokenCount"`
	TxCount     int       `json:"txCount"`
	WalletAge   string    `json:"walletAge"`

	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	ComputedAt time.Time `json:"computedAt"`
}
