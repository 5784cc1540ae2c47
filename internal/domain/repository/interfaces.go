package repository

import (
	"context"
	"errors"

	"TokenPulse/internal/domain/models"
)

// ErrNotFound marks a lookup where the upstream answered but had no data.
// Providers wrap it so callers can tell "doesn't exist" from an outage.
var ErrNotFound = errors.New("not found")

// MarketDataProvider fetches live pair snapshots from a DEX aggregator.
type MarketDataProvider interface {
	Search(ctx context.Context, query string) ([]models.PairSnapshot, error)
	PairsByToken(ctx context.Context, chain, address string) ([]models.PairSnapshot, error)
	Name() string
}

// ChainIndexer resolves on-chain facts that the aggregator does not carry.
type ChainIndexer interface {
	TokenAuthorities(ctx context.Context, mint string) (*models.TokenAuthorities, error)
	TopHolderPct(ctx context.Context, mint string) (float64, error)
	CreatorCoins(ctx context.Context, creator string) ([]models.CreatorCoin, error)
}

// WalletDataProvider fetches portfolio summaries for wallet addresses.
type WalletDataProvider interface {
	Portfolio(ctx context.Context, address string) (*models.WalletSummary, error)
}

// AnalysisStore persists finished analyses for history queries.
type AnalysisStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, a *models.TokenAnalysis) error
	StoreBatch(ctx context.Context, batch []*models.TokenAnalysis) error
	History(ctx context.Context, chain, address string, limit int) ([]*models.TokenAnalysis, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// AlertPublisher pushes high-signal analyses onto the alert bus.
type AlertPublisher interface {
	Publish(ctx context.Context, a *models.TokenAnalysis) error
	PublishBatch(ctx context.Context, batch []*models.TokenAnalysis) error
	Close() error
}

type Metrics interface {
	RecordAnalysis(chain, verdict string)
	RecordUpstream(provider, outcome string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
