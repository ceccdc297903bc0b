//go:build wireinject
// +build wireinject

package di

import (
	"IntraPull/pkg/config"
	"IntraPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCalendar,

		// Caching
		ProvideRemoteCache,
		ProvideFetchCache,

		// Pipeline stages
		ProvideProvider,
		ProvideCleaner,
		ProvideSession,
		ProvideArchiver,

		// Use cases
		ProvideSeriesUseCase,
		ProvideScanUseCase,
		ProvideLiveCollector,

		// Delivery
		ProvideHandler,
		ProvideApp,
	)
	return nil, nil
}
