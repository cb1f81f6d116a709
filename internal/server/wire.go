//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/philly/emitter/internal/adapters/fswatch"
	"github.com/philly/emitter/internal/adapters/rest"
	"github.com/philly/emitter/internal/adapters/rest/middleware"
	greeter "github.com/philly/emitter/internal/greeter/application"
	journal "github.com/philly/emitter/internal/journal/application"
	"github.com/philly/emitter/internal/platform/eventbus"
	"github.com/philly/emitter/internal/platform/logger"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		LoadConfig,

		// Logger
		provideLoggerConfig,
		logger.ProviderSet,

		// Bus and its listeners
		provideBusConfig,
		eventbus.ProviderSet,
		provideGreeterConfig,
		greeter.ProviderSet,

		// Journal storage: postgres when DATABASE_URL is set, memory otherwise
		ConnectDatabase,
		provideJournalRepository,
		provideJournalConfig,
		journal.ProviderSet,

		// Filesystem watcher
		provideWatcherConfig,
		fswatch.ProviderSet,

		// REST handlers
		rest.ProviderSet,
		provideVersion,
		provideHealthChecker,

		// Auth middleware
		provideJWTConfig,
		middleware.ProviderSet,

		// HTTP Server
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}
