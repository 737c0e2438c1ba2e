package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/validatorwatch/internal/activityscan"

	"github.com/redis/go-redis/v9"
)

const keyOwnerKeyPrefix = "keyowner"

func keyOwnerKey(key activityscan.AuthorityKey) string {
	return fmt.Sprintf("%s:%s", keyOwnerKeyPrefix, activityscan.NormalizeKey(string(key)))
}

func (c *client) LoadKeyOwner(ctx context.Context, key activityscan.AuthorityKey) (string, error) {
	owner, err := c.conn.Get(ctx, keyOwnerKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", activityscan.ErrKeyOwnerNotCached
	}

	return owner, err
}

func (c *client) StoreKeyOwner(ctx context.Context, key activityscan.AuthorityKey, owner string) error {
	return c.conn.Set(ctx, keyOwnerKey(key), owner, c.keyOwnerTTL).Err()
}

var _ activityscan.KeyOwnerCache = new(client)
