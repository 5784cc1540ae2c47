package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"TokenPulse/internal/domain/models"
	"TokenPulse/internal/domain/repository"
	pkgkafka "TokenPulse/pkg/kafka"
)

// ClickHouseAnalysisStore persists finished analyses. A few typed columns
// carry the queryable facts; the full result rides along as a JSON payload
// so history replays render exactly what the caller saw.
type ClickHouseAnalysisStore struct {
	db    *sql.DB
	table string
}

func NewClickHouseAnalysisStore(db *sql.DB, table string) repository.AnalysisStore {
	return &ClickHouseAnalysisStore{db: db, table: table}
}

func (s *ClickHouseAnalysisStore) Init(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		analyzed_at DateTime64(3),
		chain LowCardinality(String),
		address String,
		symbol String,
		price_usd Float64,
		market_cap Float64,
		liquidity_usd Float64,
		volume_24h Float64,
		risk_score UInt8,
		risk_level LowCardinality(String),
		verdict LowCardinality(String),
		momentum UInt8,
		payload String
	) ENGINE = MergeTree()
	PARTITION BY toYYYYMM(analyzed_at)
	ORDER BY (chain, address, analyzed_at)`, s.table)
	_, err := s.db.ExecContext(ctx, q)
	return err
}

func (s *ClickHouseAnalysisStore) Store(ctx context.Context, a *models.TokenAnalysis) error {
	return s.StoreBatch(ctx, []*models.TokenAnalysis{a})
}

func (s *ClickHouseAnalysisStore) StoreBatch(ctx context.Context, batch []*models.TokenAnalysis) error {
	if len(batch) == 0 {
		return nil
	}
	values := make([]string, 0, len(batch))
	args := make([]interface{}, 0, len(batch)*13)
	for _, a := range batch {
		if a == nil || a.TokenAddress == "" {
			continue
		}
		payload, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal analysis: %w", err)
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			a.AnalyzedAt,
			a.ChainID,
			a.TokenAddress,
			a.TokenSymbol,
			a.PriceUsd,
			a.MarketCap,
			a.LiquidityUsd,
			a.Volume24h,
			uint8(a.Risk.Overall.Score),
			string(a.Risk.Overall.Level),
			a.Verdict.Strength,
			uint8(a.Momentum.Score),
			string(payload),
		)
	}
	if len(values) == 0 {
		return nil
	}
	q := fmt.Sprintf("INSERT INTO %s (analyzed_at, chain, address, symbol, price_usd, market_cap, liquidity_usd, volume_24h, risk_score, risk_level, verdict, momentum, payload) VALUES %s",
		s.table, strings.Join(values, ","))
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *ClickHouseAnalysisStore) History(ctx context.Context, chain, address string, limit int) ([]*models.TokenAnalysis, error) {
	q := fmt.Sprintf("SELECT payload FROM %s WHERE chain = ? AND address = ? ORDER BY analyzed_at DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, chain, address, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TokenAnalysis
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var a models.TokenAnalysis
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			return nil, fmt.Errorf("decode analysis payload: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (s *ClickHouseAnalysisStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseAnalysisStore) Close() error {
	return nil // Managed by pkg
}

// KafkaAlertPublisher pushes analyses onto the alert topic keyed by token
// address so consumers see per-token ordering.
type KafkaAlertPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaAlertPublisher(producer *pkgkafka.Producer, topic string) repository.AlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, a *models.TokenAnalysis) error {
	return p.producer.Publish(ctx, p.topic, []byte(a.TokenAddress), a)
}

func (p *KafkaAlertPublisher) PublishBatch(ctx context.Context, batch []*models.TokenAnalysis) error {
	if len(batch) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(batch))
	for i, a := range batch {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(a.TokenAddress),
			Value: a,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaAlertPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
