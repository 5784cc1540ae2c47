package models

import "time"

// TrustLevel buckets a 0-100 trust score.
type TrustLevel string

const (
	TrustLow    TrustLevel = "LOW"    // trusted, low risk
	TrustMedium TrustLevel = "MEDIUM" // average
	TrustDanger TrustLevel = "DANGER" // high risk
)

// CreatorProfile is the enrichment input for the developer trust scorer.
// Any field may be unknown; the scorer only applies deltas for fields that
// were actually resolved (Known* flags).
type CreatorProfile struct {
	Address string `json:"address"`

	KnownAuthorities     bool `json:"knownAuthorities"`
	MintAuthorityEnabled bool `json:"mintAuthorityEnabled"`
	FreezeAuthorityEnabled bool `json:"freezeAuthorityEnabled"`

	KnownHolders      bool    `json:"knownHolders"`
	Top10HolderPct    float64 `json:"top10HolderPct"`

	KnownHistory      bool    `json:"knownHistory"`
	CoinsCreated      int     `json:"coinsCreated"`
	RuggedCoins       int     `json:"ruggedCoins"`
	SuccessfulCoins   int     `json:"successfulCoins"`
	AvgPeakMarketCap  float64 `json:"avgPeakMarketCap"`
}

// DevTrustResult is the derived trust view for a token's creator wallet.
type DevTrustResult struct {
	Address    string     `json:"address"`
	TrustScore int        `json:"trustScore"` // 0-100
	RiskLevel  TrustLevel `json:"riskLevel"`
	RiskFlags  []string   `json:"riskFlags"`
	Badge      string     `json:"badge"`
	BadgeClass string     `json:"badgeClass"`

	// Enrichment echo; zero-valued when the lookup failed.
	MintAuthorityEnabled   bool    `json:"mintAuthorityEnabled"`
	FreezeAuthorityEnabled bool    `json:"freezeAuthorityEnabled"`
	Top10HolderPct         float64 `json:"top10HolderPct"`
	CoinsCreated           int     `json:"coinsCreated"`
	RuggedCoins            int     `json:"ruggedCoins"`
	SuccessfulCoins        int     `json:"successfulCoins"`
	AvgPeakMarketCap       float64 `json:"avgPeakMarketCap"`

	// Status is "ok" when at least the primary address resolved, "unknown"
	// when nothing could be fetched. Never an error: callers always get a
	// usable result.
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	ComputedAt time.Time `json:"computedAt"`
}

// CreatorCoin is one historical token launched by a creator wallet.
type CreatorCoin struct {
	Mint            string  `json:"mint"`
	Symbol          string  `json:"symbol"`
	PeakMarketCap   float64 `json:"peakMarketCap"`
	BondingComplete bool    `json:"bondingComplete"`
	CreatedAt       int64   `json:"createdAt"` // epoch ms
}

// TokenAuthorities holds the on-chain mint/freeze permission flags.
type TokenAuthorities struct {
	MintAuthorityEnabled   bool `json:"mintAuthorityEnabled"`
	FreezeAuthorityEnabled bool `json:"freezeAuthorityEnabled"`
}
