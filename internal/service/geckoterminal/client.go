package geckoterminal

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"TokenPulse/internal/domain/models"
	"TokenPulse/internal/domain/repository"
	"TokenPulse/internal/service/ratelimit"
	"TokenPulse/pkg/config"
	xhttp "TokenPulse/pkg/http"
	"TokenPulse/pkg/logger"
	"TokenPulse/pkg/util"
)

var ErrNotFound = fmt.Errorf("geckoterminal: no pools found: %w", repository.ErrNotFound)

// networkAlias maps aggregator chain ids onto GeckoTerminal network slugs.
var networkAlias = map[string]string{
	"solana":   "solana",
	"ethereum": "eth",
	"bsc":      "bsc",
	"base":     "base",
}

// Client is the fallback market-data provider. GeckoTerminal has no free
// text search worth using, so Search piggybacks on the pools-by-token
// endpoint and only works for address-shaped queries.
type Client struct {
	baseURL string
	http    *xhttp.Client
	breaker *gobreaker.CircuitBreaker
	limiter *ratelimit.Limiter
	rpm     float64
	log     *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.GeckoTerminal.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rpm := float64(cfg.GeckoTerminal.RateLimit)
	if rpm <= 0 {
		rpm = 30
	}
	return &Client{
		baseURL: cfg.GeckoTerminal.BaseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: ratelimit.New(),
		rpm:     rpm,
		log:     log,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "geckoterminal",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (c *Client) Name() string { return "geckoterminal" }

func (c *Client) Search(ctx context.Context, query string) ([]models.PairSnapshot, error) {
	// Address-or-nothing; ticker search stays on the primary provider.
	return c.PairsByToken(ctx, "solana", query)
}

func (c *Client) PairsByToken(ctx context.Context, chain, address string) ([]models.PairSnapshot, error) {
	network, ok := networkAlias[chain]
	if !ok {
		network = chain
	}

	var out poolsResponse
	path := fmt.Sprintf("/api/v2/networks/%s/tokens/%s/pools",
		url.PathEscape(network), url.PathEscape(address))
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, ErrNotFound
	}

	pairs := make([]models.PairSnapshot, 0, len(out.Data))
	for i := range out.Data {
		pairs = append(pairs, out.Data[i].toPair(chain, address))
	}
	return pairs, nil
}

func (c *Client) get(ctx context.Context, path string, dest interface{}) error {
	if !c.limiter.Allow("geckoterminal", c.rpm, c.rpm/60) {
		return fmt.Errorf("geckoterminal: client-side rate limit")
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    c.baseURL + path,
			Headers: map[string]string{
				"Accept": "application/json",
			},
		}, dest)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", path, err)
		}
		return nil, nil
	})
	if err != nil {
		c.log.Warn("geckoterminal request failed",
			logger.String("path", path),
			logger.Error(err))
		return err
	}
	return nil
}

// --- wire types, JSON:API flavoured ---

type poolsResponse struct {
	Data []pool `json:"data"`
}

type pool struct {
	ID         string         `json:"id"`
	Attributes poolAttributes `json:"attributes"`
}

type poolAttributes struct {
	Name                  string            `json:"name"`
	Address               string            `json:"address"`
	BaseTokenPriceUsd     string            `json:"base_token_price_usd"`
	FdvUsd                string            `json:"fdv_usd"`
	MarketCapUsd          string            `json:"market_cap_usd"`
	ReserveInUsd          string            `json:"reserve_in_usd"`
	PoolCreatedAt         string            `json:"pool_created_at"`
	PriceChangePercentage map[string]string `json:"price_change_percentage"`
	VolumeUsd             map[string]string `json:"volume_usd"`
	Transactions          map[string]struct {
		Buys  int `json:"buys"`
		Sells int `json:"sells"`
	} `json:"transactions"`
}

// toPair converts a GeckoTerminal pool into the common snapshot shape so the
// scorers never see provider-specific structures.
func (p *pool) toPair(chain, tokenAddress string) models.PairSnapshot {
	a := p.Attributes

	snap := models.PairSnapshot{
		ChainID:     chain,
		DexID:       "geckoterminal",
		PairAddress: a.Address,
		BaseToken:   models.Token{Address: tokenAddress, Name: a.Name, Symbol: a.Name},
		PriceUsd:    a.BaseTokenPriceUsd,
		Fdv:         parseFloat(a.FdvUsd),
		MarketCap:   parseFloat(a.MarketCapUsd),
		Liquidity:   &models.PairLiquidity{Usd: parseFloat(a.ReserveInUsd)},
		Volume: models.PairVolume{
			H1:  parseFloat(a.VolumeUsd["h1"]),
			H6:  parseFloat(a.VolumeUsd["h6"]),
			H24: parseFloat(a.VolumeUsd["h24"]),
		},
		PriceChange: models.PairPriceChange{
			H1:  parseFloat(a.PriceChangePercentage["h1"]),
			H6:  parseFloat(a.PriceChangePercentage["h6"]),
			H24: parseFloat(a.PriceChangePercentage["h24"]),
		},
	}
	if tx, ok := a.Transactions["h24"]; ok {
		snap.Txns.H24 = models.TxnWindow{Buys: tx.Buys, Sells: tx.Sells}
	}
	if tx, ok := a.Transactions["h1"]; ok {
		snap.Txns.H1 = models.TxnWindow{Buys: tx.Buys, Sells: tx.Sells}
	}
	if t, ok := util.ParseTime(a.PoolCreatedAt); ok {
		snap.PairCreatedAt = t.UnixMilli()
	}
	return snap
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

var _ repository.MarketDataProvider = (*Client)(nil)
