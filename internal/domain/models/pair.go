package models

import (
	"strconv"
	"time"
)

// PairSnapshot represents one trading pair for a token at a point in time,
// in the shape returned by DEX aggregator APIs. Every numeric field may be
// missing or null in upstream JSON; accessors below default absent values
// to zero so scoring math never sees NaN.
type PairSnapshot struct {
	ChainID       string           `json:"chainId"`
	DexID         string           `json:"dexId"`
	URL           string           `json:"url"`
	PairAddress   string           `json:"pairAddress"`
	BaseToken     Token            `json:"baseToken"`
	QuoteToken    Token            `json:"quoteToken"`
	PriceNative   string           `json:"priceNative"`
	PriceUsd      string           `json:"priceUsd"`
	Txns          PairTxns         `json:"txns"`
	Volume        PairVolume       `json:"volume"`
	PriceChange   PairPriceChange  `json:"priceChange"`
	Liquidity     *PairLiquidity   `json:"liquidity"`
	Fdv           float64          `json:"fdv"`
	MarketCap     float64          `json:"marketCap"`
	PairCreatedAt int64            `json:"pairCreatedAt"` // epoch milliseconds, 0 when unknown
	Info          *PairInfo        `json:"info,omitempty"`
}

// Token identifies one side of a pair.
type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// PairLiquidity holds pooled value for a pair.
type PairLiquidity struct {
	Usd   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// PairTxns holds windowed transaction counts.
type PairTxns struct {
	M5  TxnWindow `json:"m5"`
	H1  TxnWindow `json:"h1"`
	H6  TxnWindow `json:"h6"`
	H24 TxnWindow `json:"h24"`
}

// TxnWindow is a buy/sell count bucket.
type TxnWindow struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// PairVolume holds windowed USD volume.
type PairVolume struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// PairPriceChange holds windowed signed percentage changes.
type PairPriceChange struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// PairInfo carries optional metadata links.
type PairInfo struct {
	ImageURL string       `json:"imageUrl,omitempty"`
	Websites []PairLink   `json:"websites,omitempty"`
	Socials  []PairSocial `json:"socials,omitempty"`
}

type PairLink struct {
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

type PairSocial struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// PriceUsdFloat parses the decimal price string, 0 when absent or malformed.
func (p *PairSnapshot) PriceUsdFloat() float64 {
	if p == nil || p.PriceUsd == "" {
		return 0
	}
	v, err := strconv.ParseFloat(p.PriceUsd, 64)
	if err != nil {
		return 0
	}
	return v
}

// LiquidityUsd returns pooled USD liquidity, 0 when the block is absent.
func (p *PairSnapshot) LiquidityUsd() float64 {
	if p == nil || p.Liquidity == nil {
		return 0
	}
	return p.Liquidity.Usd
}

// EffectiveMarketCap prefers marketCap and falls back to fdv.
func (p *PairSnapshot) EffectiveMarketCap() float64 {
	if p == nil {
		return 0
	}
	if p.MarketCap > 0 {
		return p.MarketCap
	}
	return p.Fdv
}

// TotalTxns24h is buys+sells over the trailing 24h window.
func (p *PairSnapshot) TotalTxns24h() int {
	if p == nil {
		return 0
	}
	return p.Txns.H24.Buys + p.Txns.H24.Sells
}

// Age returns elapsed time since pair creation, 0 when unknown.
func (p *PairSnapshot) Age(now time.Time) time.Duration {
	if p == nil || p.PairCreatedAt <= 0 {
		return 0
	}
	created := time.UnixMilli(p.PairCreatedAt)
	if created.After(now) {
		return 0
	}
	return now.Sub(created)
}

// HasSocials reports whether any social or website link is present.
func (p *PairSnapshot) HasSocials() bool {
	if p == nil || p.Info == nil {
		return false
	}
	return len(p.Info.Socials) > 0 || len(p.Info.Websites) > 0
}
