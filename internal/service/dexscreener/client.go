package dexscreener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"TokenPulse/internal/domain/models"
	"TokenPulse/internal/domain/repository"
	"TokenPulse/internal/service/ratelimit"
	"TokenPulse/pkg/config"
	xhttp "TokenPulse/pkg/http"
	"TokenPulse/pkg/logger"
)

var (
	ErrNotFound    = fmt.Errorf("dexscreener: no pairs found: %w", repository.ErrNotFound)
	ErrRateLimited = errors.New("dexscreener: client-side rate limit")
)

// Client talks to the DexScreener public API. Requests pass through a
// token-bucket limiter sized from config and a circuit breaker so a flapping
// upstream fails fast instead of queueing work.
type Client struct {
	baseURL string
	http    *xhttp.Client
	breaker *gobreaker.CircuitBreaker
	limiter *ratelimit.Limiter
	rpm     float64
	log     *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.DexScreener.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rpm := float64(cfg.DexScreener.RateLimit)
	if rpm <= 0 {
		rpm = 300
	}
	return &Client{
		baseURL: cfg.DexScreener.BaseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: ratelimit.New(),
		rpm:     rpm,
		log:     log,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "dexscreener",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (c *Client) Name() string { return "dexscreener" }

type searchResponse struct {
	Pairs []models.PairSnapshot `json:"pairs"`
}

// Search resolves a free-text ticker/name query to matching pairs.
func (c *Client) Search(ctx context.Context, query string) ([]models.PairSnapshot, error) {
	var out searchResponse
	path := "/latest/dex/search?q=" + url.QueryEscape(query)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	if len(out.Pairs) == 0 {
		return nil, ErrNotFound
	}
	return out.Pairs, nil
}

// PairsByToken returns all pairs quoting the given token address.
func (c *Client) PairsByToken(ctx context.Context, chain, address string) ([]models.PairSnapshot, error) {
	var out []models.PairSnapshot
	path := fmt.Sprintf("/tokens/v1/%s/%s", url.PathEscape(chain), url.PathEscape(address))
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, dest interface{}) error {
	if !c.limiter.Allow("dexscreener", c.rpm, c.rpm/60) {
		return ErrRateLimited
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    c.baseURL + path,
		}, dest)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", path, err)
		}
		return nil, nil
	})
	if err != nil {
		c.log.Warn("dexscreener request failed",
			logger.String("path", path),
			logger.Error(err))
		return err
	}
	return nil
}

var _ repository.MarketDataProvider = (*Client)(nil)
