//go:build wireinject
// +build wireinject

package di

import (
	"TokenPulse/pkg/config"
	"TokenPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
    wire.Build(
        // Ambient
        ProvideLogger,
        ProvideMetrics,
        ProvideCache,

        // Infrastructure clients
        ProvideClickHouseClient,
        ProvideKafkaProducer,
        ProvideKafkaConsumer,

        // Data providers
        ProvideMarketProviders,
        ProvideChainIndexer,
        ProvideWalletProvider,
        ProvideAnalysisStore,
        ProvideAlertPublisher,

        // Use cases
        ProvideAnalysisBatcher,
        ProvideAnalysisPipeline,
        ProvideTokenAnalyzer,
        ProvideDevTrustChecker,
        ProvideWalletChecker,
        ProvideAlertsHandler,

        // Streaming and rescans
        ProvideHub,
        ProvideRescanQueue,
        ProvideRescanScheduler,

        // HTTP surface
        ProvideEchoHandler,

        // Application server
        ProvideApp,
    )
    return &server.App{}, nil
}
