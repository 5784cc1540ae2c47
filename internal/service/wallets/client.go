package wallets

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"TokenPulse/internal/domain/models"
	"TokenPulse/internal/domain/repository"
	"TokenPulse/pkg/config"
	xhttp "TokenPulse/pkg/http"
	"TokenPulse/pkg/logger"
)

var ErrNotFound = fmt.Errorf("wallets: address not indexed: %w", repository.ErrNotFound)

// Client fetches wallet portfolio summaries from the wallet-data API.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.Wallets.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.Wallets.BaseURL,
		apiKey:  cfg.Wallets.APIKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:     log,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "wallets",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

type portfolioResponse struct {
	Address     string  `json:"address"`
	NetWorthUsd float64 `json:"netWorthUsd"`
	SolBalance  float64 `json:"solBalance"`
	Tokens      []struct {
		Mint     string  `json:"mint"`
		ValueUsd float64 `json:"valueUsd"`
	} `json:"tokens"`
	TxCount   int   `json:"txCount"`
	FirstTxAt int64 `json:"firstTxAt"`
}

func (c *Client) Portfolio(ctx context.Context, address string) (*models.WalletSummary, error) {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		var out portfolioResponse
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    c.baseURL + "/v1/wallets/" + url.PathEscape(address) + "/portfolio",
			Headers: map[string]string{
				"X-API-Key": c.apiKey,
			},
		}, &out)
		if err != nil {
			return nil, fmt.Errorf("get portfolio: %w", err)
		}
		return &out, nil
	})
	if err != nil {
		c.log.Warn("wallet portfolio lookup failed",
			logger.String("address", address),
			logger.Error(err))
		return nil, err
	}

	p := res.(*portfolioResponse)
	if p.Address == "" && p.TxCount == 0 && len(p.Tokens) == 0 {
		return nil, ErrNotFound
	}
	return &models.WalletSummary{
		Address:     address,
		NetWorthUsd: p.NetWorthUsd,
		TokenCount:  len(p.Tokens),
		TxCount:     p.TxCount,
		FirstTxAt:   p.FirstTxAt,
		SolBalance:  p.SolBalance,
	}, nil
}

var _ repository.WalletDataProvider = (*Client)(nil)
