// Package testutils provides shared test helpers
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-loadout/internal/redis"
)

// CreateTestRedisClient creates an in-memory Redis client for testing. The
// server and client are closed when the test ends.
func CreateTestRedisClient(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}
