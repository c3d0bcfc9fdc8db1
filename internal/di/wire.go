//go:build wireinject
// +build wireinject

package di

import (
	"QuotePulse/pkg/config"
	"QuotePulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideQuoteCache,
		ProvideClickHouseClient,
		ProvideSnapshotPublisher,

		// Quote pipeline
		ProvideQuoteSource,
		ProvideTickerSpecs,
		ProvideSectionsLoader,
		ProvideTickerAggregator,
		ProvideSectionAggregator,
		ProvideQuoteStream,

		// Creator registry
		ProvideCreatorStore,
		ProvideHealthService,

		// HTTP surface
		ProvideRouter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
