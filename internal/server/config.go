package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/philly/emitter/internal/platform/logger"
	"github.com/spf13/viper"
)

type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	Environment   string `mapstructure:"ENVIRONMENT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`     // Logging level (debug, info, warn, error)
	DatabaseURL   string `mapstructure:"DATABASE_URL"`  // Empty keeps the journal in memory
	JWKSEndpoint  string `mapstructure:"JWKS_ENDPOINT"` // JWKS endpoint guarding the emit route
	JWTIssuer     string `mapstructure:"JWT_ISSUER"`    // Expected JWT issuer for validation
	WatchDir      string `mapstructure:"WATCH_DIR"`     // Directory mirrored as file.changed events
	EmitMaxDepth  int    `mapstructure:"EMIT_MAX_DEPTH"`
	Greeting      string `mapstructure:"GREETING"`
	JournalLimit  int    `mapstructure:"JOURNAL_LIMIT"`
}

func LoadConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	ctx := context.Background()

	// It's okay if the .env file doesn't exist - we'll use environment variables
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	v := viper.New()

	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWKS_ENDPOINT", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("WATCH_DIR", "")
	v.SetDefault("EMIT_MAX_DEPTH", 16)
	v.SetDefault("GREETING", "Hello")
	v.SetDefault("JOURNAL_LIMIT", 100)

	// Viper will now see all environment variables, including those loaded by godotenv
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"log_level", config.LogLevel,
		"server_address", config.ServerAddress,
		"journal", journalBackend(config),
		"watch_dir", config.WatchDir,
	)

	if err := config.Validate(); err != nil {
		bootstrapLogger.Error(ctx, "configuration validation failed", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration validated successfully")
	return config, nil
}

// Validate checks settings that cannot be fixed by a default
func (c Config) Validate() error {
	if (c.JWKSEndpoint == "") != (c.JWTIssuer == "") {
		return errors.New("JWKS_ENDPOINT and JWT_ISSUER must be set together")
	}
	if c.EmitMaxDepth <= 0 {
		return fmt.Errorf("EMIT_MAX_DEPTH must be positive, got %d", c.EmitMaxDepth)
	}
	if c.JournalLimit <= 0 {
		return fmt.Errorf("JOURNAL_LIMIT must be positive, got %d", c.JournalLimit)
	}
	return nil
}

func journalBackend(c Config) string {
	if c.DatabaseURL == "" {
		return "memory"
	}
	return "postgres"
}
