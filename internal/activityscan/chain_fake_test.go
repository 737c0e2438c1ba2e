package activityscan

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

var errNode = errors.New("node unreachable")

type fakeBlock struct {
	author     string
	heartbeats []AuthorityKey
	hashErr    error
	eventsErr  error
}

// fakeChain serves blocks from memory. Block n has timestamp blockTime(n).
type fakeChain struct {
	mu sync.Mutex

	validators    []string
	validatorsErr error
	head          uint64
	headErr       error
	// validatorsAt records the block hash of every Validators call.
	validatorsAt []string
	blocks        map[uint64]fakeBlock
	owners        map[AuthorityKey]string
	// ownerFailures makes the first n lookups of a key fail.
	ownerFailures map[AuthorityKey]int
	// stuckOwners never answer; their lookups return only when ctx ends.
	stuckOwners map[AuthorityKey]bool
	// beforeBlock runs at the start of every BlockHash call.
	beforeBlock func(ctx context.Context, number uint64)

	queries       atomic.Int64
	keyOwnerCalls map[AuthorityKey]int
}

var _ Chain = (*fakeChain)(nil)

func newFakeChain(head uint64, validators ...string) *fakeChain {
	return &fakeChain{
		validators:    validators,
		head:          head,
		blocks:        make(map[uint64]fakeBlock),
		owners:        make(map[AuthorityKey]string),
		ownerFailures: make(map[AuthorityKey]int),
		stuckOwners:   make(map[AuthorityKey]bool),
		keyOwnerCalls: make(map[AuthorityKey]int),
	}
}

func blockTime(n uint64) int64 {
	return 1_700_000_000 + int64(n)*6
}

func hashOf(n uint64) string {
	return fmt.Sprintf("0x%064x", n)
}

func numberOf(hash string) uint64 {
	n, _ := strconv.ParseUint(strings.TrimPrefix(hash, "0x"), 16, 64)
	return n
}

func (c *fakeChain) block(hash string) fakeBlock {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blocks[numberOf(hash)]
}

func (c *fakeChain) Validators(ctx context.Context, hash string) ([]string, error) {
	c.queries.Add(1)

	c.mu.Lock()
	c.validatorsAt = append(c.validatorsAt, hash)
	c.mu.Unlock()

	return c.validators, c.validatorsErr
}

func (c *fakeChain) FinalizedHead(ctx context.Context) (BlockRef, error) {
	c.queries.Add(1)
	if c.headErr != nil {
		return BlockRef{}, c.headErr
	}

	return BlockRef{Number: c.head, Hash: hashOf(c.head)}, nil
}

func (c *fakeChain) BlockHash(ctx context.Context, number uint64) (string, error) {
	c.queries.Add(1)
	if c.beforeBlock != nil {
		c.beforeBlock(ctx, number)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	b := c.blocks[number]
	c.mu.Unlock()

	if b.hashErr != nil {
		return "", b.hashErr
	}

	return hashOf(number), nil
}

func (c *fakeChain) Header(ctx context.Context, hash string) (Header, error) {
	c.queries.Add(1)
	return Header{Number: numberOf(hash), Author: c.block(hash).author}, nil
}

func (c *fakeChain) Timestamp(ctx context.Context, hash string) (int64, error) {
	c.queries.Add(1)
	return blockTime(numberOf(hash)), nil
}

func (c *fakeChain) Events(ctx context.Context, hash string) ([]Event, error) {
	c.queries.Add(1)

	b := c.block(hash)
	if b.eventsErr != nil {
		return nil, b.eventsErr
	}

	events := []Event{{Pallet: "System", Name: "ExtrinsicSuccess"}}
	for _, key := range b.heartbeats {
		events = append(events, Event{Pallet: HeartbeatPallet, Name: HeartbeatEvent, Signer: key})
	}

	return events, nil
}

func (c *fakeChain) KeyOwner(ctx context.Context, key AuthorityKey) (string, bool, error) {
	c.queries.Add(1)

	c.mu.Lock()
	c.keyOwnerCalls[key]++
	stuck := c.stuckOwners[key]
	c.mu.Unlock()

	if stuck {
		<-ctx.Done()
		return "", false, ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ownerFailures[key] > 0 {
		c.ownerFailures[key]--
		return "", false, errNode
	}

	owner, ok := c.owners[key]
	return owner, ok, nil
}

func (c *fakeChain) setBlock(n uint64, b fakeBlock) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocks[n] = b
}

func (c *fakeChain) ownerCalls(key AuthorityKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.keyOwnerCalls[key]
}

type fakeConnector struct {
	chain Chain
	err   error
	calls atomic.Int64
}

func (c *fakeConnector) Connect(ctx context.Context) (Chain, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}

	return c.chain, nil
}

// memoryCache is an in-memory KeyOwnerCache.
type memoryCache struct {
	mu      sync.Mutex
	owners  map[AuthorityKey]string
	loadErr error
	// stuck makes loads wait until ctx ends.
	stuck bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{owners: make(map[AuthorityKey]string)}
}

func (c *memoryCache) LoadKeyOwner(ctx context.Context, key AuthorityKey) (string, error) {
	if c.stuck {
		<-ctx.Done()
		return "", ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loadErr != nil {
		return "", c.loadErr
	}

	owner, ok := c.owners[key]
	if !ok {
		return "", ErrKeyOwnerNotCached
	}

	return owner, nil
}

func (c *memoryCache) StoreKeyOwner(ctx context.Context, key AuthorityKey, owner string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.owners[key] = owner
	return nil
}
