// Package redis stores follower checkpoints, caches authority key owners and
// publishes activity reports to Redis streams.
package redis

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const (
	defaultKeyOwnerTTL     = 24 * time.Hour
	defaultReportStreamLen = 10_000
)

type client struct {
	conn *redis.Client

	keyOwnerTTL     time.Duration
	reportStreamLen int64
}

func (c *client) Close() error {
	return c.conn.Close()
}

type config struct {
	keyOwnerTTL     time.Duration
	reportStreamLen int64
}

type Option func(*config)

// NewClient connects to Redis and verifies the connection with PING.
func NewClient(ctx context.Context, addr, username, password string, db int, opts ...Option) (*client, error) {
	cfg := config{
		keyOwnerTTL:     defaultKeyOwnerTTL,
		reportStreamLen: defaultReportStreamLen,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &client{
		conn:            conn,
		keyOwnerTTL:     cfg.keyOwnerTTL,
		reportStreamLen: cfg.reportStreamLen,
	}, nil
}

// WithKeyOwnerTTL sets how long a resolved key owner stays cached.
// Key ownership changes when validators rotate their session keys.
func WithKeyOwnerTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.keyOwnerTTL = ttl
		}
	}
}

// WithReportStreamLen sets the approximate number of reports kept per stream.
func WithReportStreamLen(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.reportStreamLen = n
		}
	}
}
