// Package redis provides a wrapper around the go-redis client library
// for the snapshot store.
package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// Options configures Redis client behavior
type Options struct {
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
}

// NewClient creates a Redis client for a single instance
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	redisOpts := &redis.Options{
		Addr:            endpoint,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
	}

	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return redis.NewClient(redisOpts), nil
}

// NewClusterClient creates a Redis client for cluster mode
func NewClusterClient(endpoints []string, opts *Options) (Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.InvalidArgument("at least one redis endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	clusterOpts := &redis.ClusterOptions{
		Addrs:           endpoints,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
	}

	if opts.UseTLS {
		clusterOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return redis.NewClusterClient(clusterOpts), nil
}

// Connect picks a single-node client for one endpoint and a cluster client
// for several, then pings it
func Connect(ctx context.Context, endpoints []string, opts *Options) (Client, error) {
	var (
		client Client
		err    error
	)
	switch len(endpoints) {
	case 0:
		return nil, errors.InvalidArgument("at least one redis endpoint is required")
	case 1:
		client, err = NewClient(endpoints[0], opts)
	default:
		client, err = NewClusterClient(endpoints, opts)
	}
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis ping failed")
	}
	return client, nil
}
