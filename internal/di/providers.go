package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"TokenPulse/internal/domain/repository"
	"TokenPulse/internal/handler/api"
	mid "TokenPulse/internal/middleware"
	internalrepo "TokenPulse/internal/repository"
	"TokenPulse/internal/service/dexscreener"
	"TokenPulse/internal/service/geckoterminal"
	"TokenPulse/internal/service/helius"
	"TokenPulse/internal/service/stream"
	"TokenPulse/internal/service/wallets"
	"TokenPulse/internal/services/scoring"
	"TokenPulse/internal/usecase"
	pkgcache "TokenPulse/pkg/cache"
	pkgch "TokenPulse/pkg/clickhouse"
	"TokenPulse/pkg/config"
	pkgkafka "TokenPulse/pkg/kafka"
	"TokenPulse/pkg/logger"
	"TokenPulse/pkg/metrics"
	"TokenPulse/pkg/queue"
	"TokenPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return logger.New(&logger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideCache builds the analysis cache: layered over Redis when enabled,
// in-process memory otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Analyzer.Redis.Enabled {
		return pkgcache.NewMemoryCache(pkgcache.WithMemoryMaxSize(10_000)), nil
	}
	host, port, err := splitAddr(cfg.Analyzer.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Analyzer.Redis.Password),
		pkgcache.WithRedisDB(cfg.Analyzer.Redis.DB),
		pkgcache.WithRedisPrefix("tokenpulse"),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc, pkgcache.WithLayeredMemorySize(2_000)), nil
}

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}

// ProvideClickHouseClient creates a ClickHouse client when history is on.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when alerts are on.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Alerts.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaConsumer creates the alerts consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Alerts.Enabled || !cfg.History.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketProviders builds the ordered provider fallback chain.
func ProvideMarketProviders(cfg *config.Config, log *logger.Logger) []repository.MarketDataProvider {
	providers := []repository.MarketDataProvider{dexscreener.New(cfg, log)}
	if cfg.GeckoTerminal.Enabled {
		providers = append(providers, geckoterminal.New(cfg, log))
	}
	return providers
}

// ProvideChainIndexer creates the Solana indexer when configured.
func ProvideChainIndexer(cfg *config.Config, log *logger.Logger) repository.ChainIndexer {
	if !cfg.Helius.Enabled {
		return nil
	}
	return helius.New(cfg, log)
}

// ProvideWalletProvider creates the wallet-data client.
func ProvideWalletProvider(cfg *config.Config, log *logger.Logger) repository.WalletDataProvider {
	return wallets.New(cfg, log)
}

// ProvideAnalysisStore creates the ClickHouse-backed store.
func ProvideAnalysisStore(chClient *pkgch.Client, cfg *config.Config) (repository.AnalysisStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewClickHouseAnalysisStore(chClient.DB(), cfg.ClickHouse.Database+".token_analyses")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("analysis store init: %w", err)
	}
	return store, nil
}

// ProvideAlertPublisher creates the Kafka alert publisher.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.AlertPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.Topic)
}

// ProvideAnalysisBatcher creates the batch persister when any destination
// is configured.
func ProvideAnalysisBatcher(
	store repository.AnalysisStore,
	alerts repository.AlertPublisher,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.AnalysisBatcher {
	if store == nil && alerts == nil {
		return nil
	}
	return usecase.NewAnalysisBatcher(
		store,
		alerts,
		cfg.Alerts.MinRiskScore,
		cfg.Alerts.BatchSize,
		cfg.Alerts.BatchTimeout,
		m,
	)
}

// ProvideAnalysisPipeline guards the persistence path with validation,
// per-token throttling, and retry buffering.
func ProvideAnalysisPipeline(batcher *usecase.AnalysisBatcher, m repository.Metrics) *mid.AnalysisPipeline {
	if batcher == nil {
		return nil
	}
	return mid.NewAnalysisPipeline(batcher, m,
		mid.WithMaxRPS(2),
		mid.WithBufferSize(500),
	)
}

// ProvideTokenAnalyzer wires the scoring pipeline.
func ProvideTokenAnalyzer(
	providers []repository.MarketDataProvider,
	cacheSvc pkgcache.Service,
	store repository.AnalysisStore,
	alerts repository.AlertPublisher,
	pipe *mid.AnalysisPipeline,
	m repository.Metrics,
	cfg *config.Config,
	log *logger.Logger,
) *usecase.TokenAnalyzer {
	opts := []usecase.AnalyzerOption{}
	if store != nil {
		opts = append(opts, usecase.WithAnalysisStore(store))
	}
	if alerts != nil {
		opts = append(opts, usecase.WithAlertPublisher(alerts, cfg.Alerts.MinRiskScore))
	}
	if pipe != nil {
		opts = append(opts, usecase.WithPersistSink(pipe))
	}
	return usecase.NewTokenAnalyzer(
		providers,
		scoring.NewHeuristicRiskScorer(),
		scoring.NewHeuristicSentimentScorer(),
		scoring.NewHeuristicMomentumScorer(),
		scoring.NewScenarioPredictor(),
		scoring.NewRuleVerdictBuilder(),
		cacheSvc,
		cfg.Analyzer.CacheTTL.Analysis,
		m,
		log,
		opts...,
	)
}

// ProvideDevTrustChecker wires the developer trust pipeline.
func ProvideDevTrustChecker(
	indexer repository.ChainIndexer,
	providers []repository.MarketDataProvider,
	cacheSvc pkgcache.Service,
	m repository.Metrics,
	cfg *config.Config,
	log *logger.Logger,
) *usecase.DevTrustChecker {
	var market repository.MarketDataProvider
	if len(providers) > 0 {
		market = providers[0]
	}
	return usecase.NewDevTrustChecker(
		indexer,
		market,
		scoring.NewAdditiveDevTrustScorer(),
		cacheSvc,
		cfg.Analyzer.CacheTTL.DevTrust,
		m,
		log,
	)
}

// ProvideWalletChecker wires the wallet trust pipeline.
func ProvideWalletChecker(
	provider repository.WalletDataProvider,
	cacheSvc pkgcache.Service,
	m repository.Metrics,
	cfg *config.Config,
	log *logger.Logger,
) *usecase.WalletChecker {
	return usecase.NewWalletChecker(
		provider,
		scoring.NewAdditiveWalletTrustScorer(),
		cacheSvc,
		cfg.Analyzer.CacheTTL.Wallet,
		m,
		log,
	)
}

// ProvideHub creates the websocket fan-out hub.
func ProvideHub(log *logger.Logger) *stream.Hub {
	return stream.NewHub(log)
}

// ProvideRescanQueue builds the Redis-backed rescan queue and registers the
// job. Disabled (nil) unless both Redis and rescans are configured.
func ProvideRescanQueue(
	cfg *config.Config,
	log *logger.Logger,
	cacheSvc pkgcache.Service,
	analyzer *usecase.TokenAnalyzer,
	hub *stream.Hub,
) *queue.RedisQueue {
	if !cfg.Analyzer.Redis.Enabled || !cfg.Analyzer.Rescan.Enabled {
		return nil
	}
	layered, ok := cacheSvc.(*pkgcache.LayeredCache)
	if !ok {
		return nil
	}
	job := usecase.NewRescanJob(analyzer, hub, log)
	return queue.NewRedisConsumer(log,
		&queue.QueueConfig{
			Workers:    cfg.Analyzer.Rescan.Workers,
			RetryLimit: 2,
			RetryDelay: 15 * time.Second,
		},
		layered.Redis().Client(),
		[]queue.Job{job},
		queue.WithKeyPrefix("tokenpulse:rescan"),
	)
}

// ProvideRescanScheduler ticks the watchlist into the queue.
func ProvideRescanScheduler(
	cfg *config.Config,
	hub *stream.Hub,
	q *queue.RedisQueue,
	log *logger.Logger,
) *usecase.RescanScheduler {
	if q == nil {
		return nil
	}
	return usecase.NewRescanScheduler(hub, q, cfg.Analyzer.Rescan.Interval, log)
}

// ProvideAlertsHandler registers the handler for the alerts topic.
func ProvideAlertsHandler(store repository.AnalysisStore, m repository.Metrics, cfg *config.Config) *usecase.AlertsHandler {
	if store == nil {
		return nil
	}
	return usecase.NewAlertsHandler(cfg.Kafka.Topic, store, m)
}

// ProvideEchoHandler builds the HTTP route handler.
func ProvideEchoHandler(
	log *logger.Logger,
	analyzer *usecase.TokenAnalyzer,
	dev *usecase.DevTrustChecker,
	wallet *usecase.WalletChecker,
	hub *stream.Hub,
) *api.TokensEchoHandler {
	return api.NewTokensEchoHandler(log, analyzer, dev, wallet, hub)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler *api.TokensEchoHandler,
	consumer *pkgkafka.Consumer,
	ah *usecase.AlertsHandler,
	chClient *pkgch.Client,
	q *queue.RedisQueue,
	scheduler *usecase.RescanScheduler,
	pipe *mid.AnalysisPipeline,
	batcher *usecase.AnalysisBatcher,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	return server.New(cfg, log, handler, consumer, ah, chClient, q, scheduler, pipe, batcher)
}
