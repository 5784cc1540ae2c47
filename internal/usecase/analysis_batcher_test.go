package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TokenPulse/internal/domain/models"
)

type fakeStore struct {
	mu      sync.Mutex
	batches [][]*models.TokenAnalysis
	singles []*models.TokenAnalysis
}

func (s *fakeStore) Init(context.Context) error { return nil }

func (s *fakeStore) Store(_ context.Context, a *models.TokenAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.singles = append(s.singles, a)
	return nil
}

func (s *fakeStore) StoreBatch(_ context.Context, batch []*models.TokenAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, batch)
	return nil
}

func (s *fakeStore) History(context.Context, string, string, int) ([]*models.TokenAnalysis, error) {
	return nil, nil
}

func (s *fakeStore) Health(context.Context) error { return nil }
func (s *fakeStore) Close() error                 { return nil }

type fakeAlerts struct {
	mu      sync.Mutex
	batches [][]*models.TokenAnalysis
}

func (p *fakeAlerts) Publish(_ context.Context, a *models.TokenAnalysis) error {
	return p.PublishBatch(context.Background(), []*models.TokenAnalysis{a})
}

func (p *fakeAlerts) PublishBatch(_ context.Context, batch []*models.TokenAnalysis) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batches = append(p.batches, batch)
	return nil
}

func (p *fakeAlerts) Close() error { return nil }

func analysisWithRisk(address string, score int) *models.TokenAnalysis {
	return &models.TokenAnalysis{
		ChainID:      "solana",
		TokenAddress: address,
		Risk: models.RiskAssessment{
			Overall: models.RiskCategory{Score: score},
		},
		AnalyzedAt: time.Now(),
	}
}

func TestBatcherFlushesWhenFull(t *testing.T) {
	store := &fakeStore{}
	b := NewAnalysisBatcher(store, nil, 7, 2, time.Hour, newFakeMetrics())

	require.NoError(t, b.Process(context.Background(), analysisWithRisk("tokA", 3)))
	assert.Empty(t, store.batches)

	require.NoError(t, b.Process(context.Background(), analysisWithRisk("tokB", 3)))
	require.Len(t, store.batches, 1)
	assert.Len(t, store.batches[0], 2)
}

func TestBatcherAlertsOnlyRiskyTokens(t *testing.T) {
	store := &fakeStore{}
	alerts := &fakeAlerts{}
	b := NewAnalysisBatcher(store, alerts, 7, 3, time.Hour, newFakeMetrics())

	require.NoError(t, b.Process(context.Background(), analysisWithRisk("safe", 2)))
	require.NoError(t, b.Process(context.Background(), analysisWithRisk("sketchy", 8)))
	require.NoError(t, b.Process(context.Background(), analysisWithRisk("radioactive", 9)))

	require.Len(t, store.batches, 1)
	assert.Len(t, store.batches[0], 3)

	require.Len(t, alerts.batches, 1)
	require.Len(t, alerts.batches[0], 2)
	assert.Equal(t, "sketchy", alerts.batches[0][0].TokenAddress)
	assert.Equal(t, "radioactive", alerts.batches[0][1].TokenAddress)
}

func TestBatcherCloseFlushesPending(t *testing.T) {
	store := &fakeStore{}
	b := NewAnalysisBatcher(store, nil, 7, 50, time.Hour, newFakeMetrics())

	require.NoError(t, b.Process(context.Background(), analysisWithRisk("tokA", 3)))
	assert.Empty(t, store.batches)

	require.NoError(t, b.Close())
	require.Len(t, store.batches, 1)
	assert.Len(t, store.batches[0], 1)
}
