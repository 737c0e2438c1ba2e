package activityscan

import (
	"context"
	"strings"
)

const (
	// HeartbeatPallet and HeartbeatEvent identify liveness signals in a block's event log.
	HeartbeatPallet = "ImOnline"
	HeartbeatEvent  = "HeartbeatReceived"
)

// AuthorityKey is the hex encoded public key a validator signs heartbeats with.
// It is distinct from the validator's account address.
type AuthorityKey string

// BlockRef identifies a block by number and hash.
type BlockRef struct {
	Number uint64
	Hash   string
}

// Header is the part of a block header the scanner needs.
type Header struct {
	Number uint64
	// Author is the address of the block producer, empty when it could not be derived.
	Author string
}

// Event is one entry of a block's event log.
type Event struct {
	Pallet string
	Name   string
	// Signer is the authority key carried by the event, empty when the event has none.
	Signer AuthorityKey
}

// IsHeartbeat reports whether e is a liveness signal.
func (e Event) IsHeartbeat() bool {
	return e.Pallet == HeartbeatPallet && e.Name == HeartbeatEvent
}

// Chain is the read-only query interface of a node. Implementations must be
// safe for concurrent use.
type Chain interface {
	// FinalizedHead returns the latest finalized block.
	FinalizedHead(ctx context.Context) (BlockRef, error)

	// Validators returns the addresses of the validator set at the block with the given hash.
	Validators(ctx context.Context, hash string) ([]string, error)

	// BlockHash returns the hash of the canonical block at number.
	BlockHash(ctx context.Context, number uint64) (string, error)

	// Header returns the number and author of the block with the given hash.
	Header(ctx context.Context, hash string) (Header, error)

	// Timestamp returns the block's timestamp in Unix seconds.
	Timestamp(ctx context.Context, hash string) (int64, error)

	// Events returns the events emitted in the block.
	Events(ctx context.Context, hash string) ([]Event, error)

	// KeyOwner resolves the validator that owns key. found is false when no
	// owner is registered.
	KeyOwner(ctx context.Context, key AuthorityKey) (owner string, found bool, err error)
}

// ChainConnector hands out a Chain backed by a live connection. The connection
// belongs to the connector, not to the caller.
type ChainConnector interface {
	Connect(ctx context.Context) (Chain, error)
}

// KeyOwnerCache stores resolved key owners across scans. Key ownership rarely
// changes, so only positive lookups are stored.
type KeyOwnerCache interface {
	// LoadKeyOwner returns ErrKeyOwnerNotCached when key is unknown.
	LoadKeyOwner(ctx context.Context, key AuthorityKey) (string, error)
	StoreKeyOwner(ctx context.Context, key AuthorityKey, owner string) error
}

// NormalizeAddress makes addresses comparable: surrounding blanks are
// removed and hex addresses are lowercased. SS58 addresses are case
// sensitive and kept as they are.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if strings.HasPrefix(address, "0x") || strings.HasPrefix(address, "0X") {
		return strings.ToLower(address)
	}

	return address
}

// NormalizeKey lowercases a hex authority key and adds the 0x prefix if missing.
func NormalizeKey(key string) AuthorityKey {
	key = strings.ToLower(strings.TrimSpace(key))
	if key != "" && !strings.HasPrefix(key, "0x") {
		key = "0x" + key
	}

	return AuthorityKey(key)
}
