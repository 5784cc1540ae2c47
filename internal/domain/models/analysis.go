package models

import "time"

// RiskLevel buckets a numeric risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskCategory pairs a level with its 0-10 score.
type RiskCategory struct {
	Level RiskLevel `json:"level"`
	Score int       `json:"score"`
}

// RiskAssessment holds the four category scores plus the weighted overall.
type RiskAssessment struct {
	RugPull             RiskCategory `json:"rugPull"`
	Liquidity           RiskCategory `json:"liquidity"`
	HolderConcentration RiskCategory `json:"holderConcentration"`
	Volatility          RiskCategory `json:"volatility"`
	Overall             RiskCategory `json:"overall"`
}

// SentimentSnapshot holds trading-activity classifications for one pair.
type SentimentSnapshot struct {
	VolumeTrend      string  `json:"volumeTrend"`      // Increasing | Decreasing | Stable
	WhaleActivity    string  `json:"whaleActivity"`    // Accumulation | Distribution | Neutral
	HypeLevel        string  `json:"hypeLevel"`        // Low | Medium | High
	Volatility       string  `json:"volatility"`       // Low | Medium | High
	TrendDirection   string  `json:"trendDirection"`   // Bullish | Bearish | Neutral
	BuySellRatio     float64 `json:"buySellRatio"`
	TransactionCount int     `json:"transactionCount"`
}

// MomentumScore is a 0-100 trading-intensity composite with a label.
// It is deliberately independent of RiskAssessment.
type MomentumScore struct {
	Score int    `json:"score"`
	Label string `json:"label"` // Strong | Moderate | Weak | Very Weak
}

// PriceRange is a low/high band in USD.
type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Scenario is one speculative price/market-cap projection.
type Scenario struct {
	Price     PriceRange `json:"price"`
	MarketCap PriceRange `json:"marketCap"`
}

// Prediction bundles the three scenario bands. Entertainment-grade only;
// Speculative is always true so consumers must label it as such.
type Prediction struct {
	Bullish     Scenario `json:"bullish"`
	Neutral     Scenario `json:"neutral"`
	Bearish     Scenario `json:"bearish"`
	Speculative bool     `json:"speculative"`
}

// Verdict is the terminal combination of risk and sentiment.
type Verdict struct {
	Strength    string    `json:"strength"` // Strong | Moderate | Weak
	SuitableFor []string  `json:"suitableFor"`
	Summary     string    `json:"summary"`
	RiskScore   int       `json:"riskScore"`
	RiskLevel   RiskLevel `json:"riskLevel"`
}

// TokenAnalysis is the full derived view for one pair snapshot.
type TokenAnalysis struct {
	ChainID      string            `json:"chainId"`
	TokenAddress string            `json:"tokenAddress"`
	TokenSymbol  string            `json:"tokenSymbol"`
	TokenName    string            `json:"tokenName"`
	PriceUsd     float64           `json:"priceUsd"`
	MarketCap    float64           `json:"marketCap"`
	LiquidityUsd float64           `json:"liquidityUsd"`
	Volume24h    float64           `json:"volume24h"`
	Risk         RiskAssessment    `json:"risk"`
	Sentiment    SentimentSnapshot `json:"sentiment"`
	Momentum     MomentumScore     `json:"momentum"`
	Prediction   Prediction        `json:"prediction"`
	Verdict      Verdict           `json:"verdict"`
	Display      DisplayStrings    `json:"display"`
	AnalyzedAt   time.Time         `json:"analyzedAt"`
}

// DisplayStrings carries pre-formatted values for dashboard rendering.
type DisplayStrings struct {
	Price     string `json:"price"`
	MarketCap string `json:"marketCap"`
	Liquidity string `json:"liquidity"`
	Volume24h string `json:"volume24h"`
	Address   string `json:"address"`
}
