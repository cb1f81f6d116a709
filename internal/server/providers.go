package server

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/philly/emitter/internal/adapters/fswatch"
	"github.com/philly/emitter/internal/adapters/memory"
	"github.com/philly/emitter/internal/adapters/postgres"
	"github.com/philly/emitter/internal/adapters/rest"
	"github.com/philly/emitter/internal/adapters/rest/middleware"
	greeter "github.com/philly/emitter/internal/greeter/application"
	journal "github.com/philly/emitter/internal/journal/application"
	"github.com/philly/emitter/internal/journal/ports"
	"github.com/philly/emitter/internal/platform/eventbus"
	"github.com/philly/emitter/internal/platform/logger"
)

// provideVersion provides the application version
func provideVersion() string {
	return "1.0.0"
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

func provideBusConfig(config Config) eventbus.Config {
	return eventbus.Config{MaxDepth: config.EmitMaxDepth}
}

// provideGreeterConfig sends greetings to stdout
func provideGreeterConfig(config Config) greeter.Config {
	return greeter.Config{Greeting: config.Greeting, Output: os.Stdout}
}

func provideJournalConfig(config Config) journal.Config {
	return journal.Config{MaxLimit: config.JournalLimit}
}

func provideJWTConfig(config Config) middleware.JWTConfig {
	return middleware.JWTConfig{JWKS: config.JWKSEndpoint, Issuer: config.JWTIssuer}
}

func provideWatcherConfig(config Config) fswatch.Config {
	return fswatch.Config{Dir: config.WatchDir}
}

// provideJournalRepository picks postgres when a pool exists and a memory ring otherwise
func provideJournalRepository(ctx context.Context, pool *pgxpool.Pool, config Config, log logger.Logger) (ports.EntryRepository, error) {
	if pool == nil {
		return memory.NewJournalRepository(config.JournalLimit), nil
	}

	repo := postgres.NewJournalRepository(pool)
	if err := ensureJournalSchema(ctx, pool, repo); err != nil {
		log.Error(ctx, "failed to prepare journal schema", "error", err)
		return nil, err
	}
	return repo, nil
}

// ensureJournalSchema creates the journal table in a single transaction
func ensureJournalSchema(ctx context.Context, pool *pgxpool.Pool, repo *postgres.JournalRepository) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := repo.WithTx(tx).EnsureSchema(ctx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// provideHealthChecker returns a nil interface, not a typed nil, when there is no pool
func provideHealthChecker(pool *pgxpool.Pool) rest.HealthChecker {
	if pool == nil {
		return nil
	}
	return pool
}
