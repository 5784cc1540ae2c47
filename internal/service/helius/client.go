package helius

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"TokenPulse/internal/domain/models"
	"TokenPulse/internal/domain/repository"
	"TokenPulse/pkg/config"
	xhttp "TokenPulse/pkg/http"
	"TokenPulse/pkg/logger"
)

var ErrUnavailable = errors.New("helius: indexer unavailable")

// Client resolves on-chain Solana facts over the Helius JSON-RPC endpoint.
// Every lookup is best effort; the trust scorers degrade per field when a
// call fails, so errors here are reported but never fatal to an analysis.
type Client struct {
	rpcURL  string
	http    *xhttp.Client
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.Helius.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	rpcURL := cfg.Helius.RPCURL
	if cfg.Helius.APIKey != "" {
		rpcURL += "?api-key=" + cfg.Helius.APIKey
	}
	return &Client{
		rpcURL: rpcURL,
		http:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:    log,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "helius",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) call(ctx context.Context, method string, params interface{}, dest interface{}) error {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		var out rpcResponse
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodPost,
			URL:    c.rpcURL,
			Body:   rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params},
		}, &out)
		if err != nil {
			return nil, fmt.Errorf("rpc %s: %w", method, err)
		}
		if out.Error != nil {
			return nil, fmt.Errorf("rpc %s: %s (code %d)", method, out.Error.Message, out.Error.Code)
		}
		return out.Result, nil
	})
	if err != nil {
		c.log.Warn("helius call failed", logger.String("method", method), logger.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(res.(json.RawMessage), dest); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// TokenAuthorities reads the mint account and reports whether the mint and
// freeze authorities are still set. A revoked authority comes back null.
func (c *Client) TokenAuthorities(ctx context.Context, mint string) (*models.TokenAuthorities, error) {
	var out struct {
		Value *struct {
			Data struct {
				Parsed struct {
					Info struct {
						MintAuthority   *string `json:"mintAuthority"`
						FreezeAuthority *string `json:"freezeAuthority"`
					} `json:"info"`
				} `json:"parsed"`
			} `json:"data"`
		} `json:"value"`
	}
	params := []interface{}{mint, map[string]string{"encoding": "jsonParsed"}}
	if err := c.call(ctx, "getAccountInfo", params, &out); err != nil {
		return nil, err
	}
	if out.Value == nil {
		return nil, fmt.Errorf("helius: mint account %s not found", mint)
	}
	info := out.Value.Data.Parsed.Info
	return &models.TokenAuthorities{
		MintAuthorityEnabled:   info.MintAuthority != nil,
		FreezeAuthorityEnabled: info.FreezeAuthority != nil,
	}, nil
}

// TopHolderPct sums the ten largest token accounts against total supply.
func (c *Client) TopHolderPct(ctx context.Context, mint string) (float64, error) {
	var largest struct {
		Value []struct {
			UIAmount float64 `json:"uiAmount"`
		} `json:"value"`
	}
	if err := c.call(ctx, "getTokenLargestAccounts", []interface{}{mint}, &largest); err != nil {
		return 0, err
	}

	var supply struct {
		Value struct {
			UIAmount float64 `json:"uiAmount"`
		} `json:"value"`
	}
	if err := c.call(ctx, "getTokenSupply", []interface{}{mint}, &supply); err != nil {
		return 0, err
	}
	if supply.Value.UIAmount <= 0 {
		return 0, fmt.Errorf("helius: zero supply for %s", mint)
	}

	var top float64
	for i, acc := range largest.Value {
		if i >= 10 {
			break
		}
		top += acc.UIAmount
	}
	return top / supply.Value.UIAmount * 100, nil
}

// CreatorCoins lists fungible assets created by the wallet via the DAS API.
func (c *Client) CreatorCoins(ctx context.Context, creator string) ([]models.CreatorCoin, error) {
	var out struct {
		Items []struct {
			ID      string `json:"id"`
			Content struct {
				Metadata struct {
					Symbol string `json:"symbol"`
				} `json:"metadata"`
			} `json:"content"`
		} `json:"items"`
	}
	params := map[string]interface{}{
		"creatorAddress": creator,
		"page":           1,
		"limit":          100,
	}
	if err := c.call(ctx, "getAssetsByCreator", params, &out); err != nil {
		return nil, err
	}

	coins := make([]models.CreatorCoin, 0, len(out.Items))
	for _, it := range out.Items {
		coins = append(coins, models.CreatorCoin{
			Mint:   it.ID,
			Symbol: it.Content.Metadata.Symbol,
		})
	}
	return coins, nil
}

var _ repository.ChainIndexer = (*Client)(nil)
