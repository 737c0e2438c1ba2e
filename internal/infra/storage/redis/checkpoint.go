package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gabapcia/validatorwatch/internal/activityfollow"

	"github.com/redis/go-redis/v9"
)

const activityfollowKeyPrefix = "activityfollow"

// activityfollowCheckpointKey is "activityfollow:checkpoint:<network>".
func activityfollowCheckpointKey(network string) string {
	return fmt.Sprintf("%s:checkpoint:%s", activityfollowKeyPrefix, network)
}

// SaveCheckpoint stores the last block covered by a published report. The
// key has no expiration.
func (c *client) SaveCheckpoint(ctx context.Context, network string, block uint64) error {
	key := activityfollowCheckpointKey(network)
	return c.conn.Set(ctx, key, block, 0).Err()
}

// LoadLatestCheckpoint returns activityfollow.ErrNoCheckpointFound when the
// network has no checkpoint yet.
func (c *client) LoadLatestCheckpoint(ctx context.Context, network string) (uint64, error) {
	key := activityfollowCheckpointKey(network)

	val, err := c.conn.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = activityfollow.ErrNoCheckpointFound
		}

		return 0, err
	}

	block, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid checkpoint %q for %s: %w", val, network, err)
	}

	return block, nil
}

var _ activityfollow.CheckpointStorage = new(client)
