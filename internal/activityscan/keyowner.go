package activityscan

import (
	"context"
	"errors"
	"time"

	"github.com/gabapcia/validatorwatch/internal/pkg/logger"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/sync/errgroup"
)

// keyOwner is a memoized lookup result. Found is false for keys with no owner.
type keyOwner struct {
	Address string
	Found   bool
}

// keyResolver maps authority keys to validator addresses for one scan.
// Successful lookups, including "no owner", are memoized. Failed lookups are
// not, so a later batch tries the key again.
type keyResolver struct {
	chain       Chain
	cache       KeyOwnerCache
	concurrency int
	timeout     time.Duration
	memo        *xsync.Map[AuthorityKey, keyOwner]
}

func newKeyResolver(chain Chain, cache KeyOwnerCache, concurrency int, timeout time.Duration) *keyResolver {
	return &keyResolver{
		chain:       chain,
		cache:       cache,
		concurrency: concurrency,
		timeout:     timeout,
		memo:        xsync.NewMap[AuthorityKey, keyOwner](),
	}
}

// resolveAll looks up every key not memoized yet, concurrently. Each lookup
// runs under the resolver's timeout. It returns the number of keys whose
// lookup failed.
func (r *keyResolver) resolveAll(ctx context.Context, keys []AuthorityKey) int {
	var (
		g      errgroup.Group
		failed = xsync.NewCounter()
		seen   = make(map[AuthorityKey]struct{}, len(keys))
	)
	g.SetLimit(r.concurrency)

	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := r.memo.Load(key); ok {
			continue
		}

		g.Go(func() error {
			owner, err := r.lookup(ctx, key)
			if err != nil {
				failed.Inc()
				logger.Warn(ctx, "key owner lookup failed", "authority.key", key, "error", err)
				return nil
			}

			r.memo.Store(key, owner)
			return nil
		})
	}

	_ = g.Wait()
	return int(failed.Value())
}

// lookup consults the cache before the chain and fills the cache on a chain hit.
func (r *keyResolver) lookup(ctx context.Context, key AuthorityKey) (keyOwner, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if r.cache != nil {
		address, err := r.cache.LoadKeyOwner(ctx, key)
		switch {
		case err == nil:
			return keyOwner{Address: address, Found: true}, nil
		case !errors.Is(err, ErrKeyOwnerNotCached):
			logger.Debug(ctx, "key owner cache unavailable", "authority.key", key, "error", err)
		}

		if err := ctx.Err(); err != nil {
			return keyOwner{}, err
		}
	}

	address, found, err := r.chain.KeyOwner(ctx, key)
	if err != nil {
		return keyOwner{}, err
	}

	address = NormalizeAddress(address)
	if found && r.cache != nil {
		if err := r.cache.StoreKeyOwner(ctx, key, address); err != nil {
			logger.Debug(ctx, "key owner cache store failed", "authority.key", key, "error", err)
		}
	}

	return keyOwner{Address: address, Found: found}, nil
}

// owner returns the memoized owner of key. ok is false when the key has no
// owner or its lookup failed.
func (r *keyResolver) owner(key AuthorityKey) (string, bool) {
	owner, ok := r.memo.Load(key)
	if !ok || !owner.Found {
		return "", false
	}

	return owner.Address, true
}
