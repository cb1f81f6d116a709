package middleware

import (
	"context"

	"github.com/google/wire"
)

// ProviderSet is the wire provider set for middleware components
var ProviderSet = wire.NewSet(
	ProvideJWTMiddleware,
)

// JWTConfig carries the minimal settings needed to construct the JWT middleware
type JWTConfig struct {
	JWKS   string
	Issuer string
}

// ProvideJWTMiddleware creates JWT middleware from JWTConfig. It returns nil when
// no JWKS endpoint is configured, leaving the emit route open.
func ProvideJWTMiddleware(ctx context.Context, cfg JWTConfig) (*JWTMiddleware, error) {
	if cfg.JWKS == "" {
		return nil, nil
	}
	return NewJWTMiddleware(ctx, cfg.JWKS, cfg.Issuer)
}
