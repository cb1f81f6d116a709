package server

import (
	"context"
	"testing"

	"github.com/philly/emitter/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectDatabaseWithoutURL(t *testing.T) {
	pool, cleanup, err := ConnectDatabase(context.Background(), Config{}, logger.Nop{})

	require.NoError(t, err)
	assert.Nil(t, pool)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestConnectDatabaseInvalidURL(t *testing.T) {
	_, _, err := ConnectDatabase(context.Background(), Config{DatabaseURL: "postgres://%zz/emitter"}, logger.Nop{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse database URL")
}
