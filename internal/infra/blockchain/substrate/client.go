// Package substrate implements activityscan.Chain for Substrate nodes over
// JSON-RPC. Storage values are read raw with state_getStorage and decoded
// with SCALE; event logs are decoded with the metadata of the runtime that
// produced the block.
package substrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabapcia/validatorwatch/internal/activityscan"
	"github.com/gabapcia/validatorwatch/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/validatorwatch/internal/pkg/types"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/vedhavyas/go-subkey/v2"
)

var (
	// ErrBlockNotFound is returned when the node knows no block at the requested number.
	ErrBlockNotFound = errors.New("block not found")

	// ErrStorageNotFound is returned when a required storage value is absent.
	ErrStorageNotFound = errors.New("storage value not found")

	// ErrUnexpectedStorageValue is returned when a storage value does not decode to the expected type.
	ErrUnexpectedStorageValue = errors.New("unexpected storage value")

	// ErrMalformedDigest is returned when a header digest cannot be decoded.
	ErrMalformedDigest = errors.New("malformed digest")
)

// client reads chain state through one JSON-RPC connection.
type client struct {
	conn       jsonrpc.Client
	ss58Prefix uint16

	// runtimes caches decoders by spec version. It is shared by every client of a Connector.
	runtimes *xsync.Map[uint32, *runtime]
}

var _ activityscan.Chain = (*client)(nil)

func newClient(conn jsonrpc.Client, ss58Prefix uint16, runtimes *xsync.Map[uint32, *runtime]) *client {
	return &client{
		conn:       conn,
		ss58Prefix: ss58Prefix,
		runtimes:   runtimes,
	}
}

// call sends method and decodes its result into out.
func (c *client) call(ctx context.Context, out any, method string, params ...any) error {
	data, err := c.conn.Fetch(ctx, method, params...)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode result: %w", method, err)
	}

	return nil
}

// storage returns the raw value at key, nil when absent. An empty at means the best block.
func (c *client) storage(ctx context.Context, key []byte, at string) (types.HexBytes, error) {
	params := []any{types.HexBytes(key).String()}
	if at != "" {
		params = append(params, at)
	}

	var value types.HexBytes
	if err := c.call(ctx, &value, "state_getStorage", params...); err != nil {
		return nil, err
	}

	return value, nil
}

func (c *client) header(ctx context.Context, hash string) (headerResponse, error) {
	params := []any{}
	if hash != "" {
		params = append(params, hash)
	}

	var header headerResponse
	return header, c.call(ctx, &header, "chain_getHeader", params...)
}

// validatorsAt returns the SS58 addresses of Session.Validators at block hash.
func (c *client) validatorsAt(ctx context.Context, hash string) ([]string, error) {
	raw, err := c.storage(ctx, sessionValidatorsKey, hash)
	if err != nil {
		return nil, err
	}

	if raw == nil {
		return nil, fmt.Errorf("%w: Session.Validators", ErrStorageNotFound)
	}

	var accounts [][32]byte
	if err := codec.Decode(raw, &accounts); err != nil {
		return nil, fmt.Errorf("%w: Session.Validators: %w", ErrUnexpectedStorageValue, err)
	}

	addresses := make([]string, len(accounts))
	for i, account := range accounts {
		addresses[i] = c.address(account)
	}

	return addresses, nil
}

func (c *client) address(account [32]byte) string {
	return subkey.SS58Encode(account[:], c.ss58Prefix)
}

// Validators returns the validator set at the block with the given hash.
func (c *client) Validators(ctx context.Context, hash string) ([]string, error) {
	return c.validatorsAt(ctx, hash)
}

func (c *client) FinalizedHead(ctx context.Context) (activityscan.BlockRef, error) {
	var hash string
	if err := c.call(ctx, &hash, "chain_getFinalizedHead"); err != nil {
		return activityscan.BlockRef{}, err
	}

	header, err := c.header(ctx, hash)
	if err != nil {
		return activityscan.BlockRef{}, err
	}

	return activityscan.BlockRef{Number: header.Number.Uint64(), Hash: hash}, nil
}

func (c *client) BlockHash(ctx context.Context, number uint64) (string, error) {
	var hash *string
	if err := c.call(ctx, &hash, "chain_getBlockHash", number); err != nil {
		return "", err
	}

	if hash == nil || *hash == "" {
		return "", fmt.Errorf("%w: %d", ErrBlockNotFound, number)
	}

	return *hash, nil
}

// Header returns the block number and its author. The author is derived from
// the pre-runtime digest and the validator set at that block; it is left
// empty when the digest carries no usable slot.
func (c *client) Header(ctx context.Context, hash string) (activityscan.Header, error) {
	header, err := c.header(ctx, hash)
	if err != nil {
		return activityscan.Header{}, err
	}

	result := activityscan.Header{Number: header.Number.Uint64()}

	slot, err := findAuthorSlot(header.Digest.Logs)
	if err != nil {
		return result, nil
	}

	validators, err := c.validatorsAt(ctx, hash)
	if err != nil {
		return activityscan.Header{}, err
	}

	if i, ok := slot.resolve(len(validators)); ok {
		result.Author = validators[i]
	}

	return result, nil
}

// Timestamp returns Timestamp.Now at hash, converted from milliseconds to seconds.
func (c *client) Timestamp(ctx context.Context, hash string) (int64, error) {
	raw, err := c.storage(ctx, timestampNowKey, hash)
	if err != nil {
		return 0, err
	}

	if raw == nil {
		return 0, fmt.Errorf("%w: Timestamp.Now", ErrStorageNotFound)
	}

	var millis gsrpc.U64
	if err := codec.Decode(raw, &millis); err != nil {
		return 0, fmt.Errorf("%w: Timestamp.Now: %w", ErrUnexpectedStorageValue, err)
	}

	return int64(millis) / 1000, nil
}

func (c *client) Events(ctx context.Context, hash string) ([]activityscan.Event, error) {
	rt, err := c.runtimeAt(ctx, hash)
	if err != nil {
		return nil, err
	}

	raw, err := c.storage(ctx, systemEventsKey, hash)
	if err != nil {
		return nil, err
	}

	if raw.IsEmpty() {
		return nil, nil
	}

	return rt.decodeEvents(raw)
}

// KeyOwner looks up Session.KeyOwner for an ImOnline key at the best block.
func (c *client) KeyOwner(ctx context.Context, key activityscan.AuthorityKey) (string, bool, error) {
	keyBytes, err := types.ParseHexBytes(string(key))
	if err != nil {
		return "", false, fmt.Errorf("authority key %q: %w", key, err)
	}

	storageKey, err := keyOwnerKey(keyBytes)
	if err != nil {
		return "", false, err
	}

	raw, err := c.storage(ctx, storageKey, "")
	if err != nil {
		return "", false, err
	}

	if raw == nil {
		return "", false, nil
	}

	var account [32]byte
	if err := codec.Decode(raw, &account); err != nil {
		return "", false, fmt.Errorf("%w: Session.KeyOwner: %w", ErrUnexpectedStorageValue, err)
	}

	return c.address(account), true, nil
}

type runtimeVersionResponse struct {
	SpecName    string `json:"specName"`
	SpecVersion uint32 `json:"specVersion"`
}

// runtimeAt returns the decoder for the runtime of block hash, fetching its
// metadata on first use of a spec version.
func (c *client) runtimeAt(ctx context.Context, hash string) (*runtime, error) {
	var version runtimeVersionResponse
	if err := c.call(ctx, &version, "state_getRuntimeVersion", hash); err != nil {
		return nil, err
	}

	if rt, ok := c.runtimes.Load(version.SpecVersion); ok {
		return rt, nil
	}

	var fetchErr error
	rt, _ := c.runtimes.LoadOrCompute(version.SpecVersion, func() (*runtime, bool) {
		rt, err := c.fetchRuntime(ctx, hash, version.SpecVersion)
		if err != nil {
			fetchErr = err
			return nil, true
		}
		return rt, false
	})
	if fetchErr != nil {
		return nil, fetchErr
	}

	return rt, nil
}

func (c *client) fetchRuntime(ctx context.Context, hash string, specVersion uint32) (*runtime, error) {
	var encoded string
	if err := c.call(ctx, &encoded, "state_getMetadata", hash); err != nil {
		return nil, err
	}

	var meta gsrpc.Metadata
	if err := codec.DecodeFromHex(encoded, &meta); err != nil {
		return nil, fmt.Errorf("%w: metadata: %w", ErrUnexpectedStorageValue, err)
	}

	return newRuntime(specVersion, &meta)
}
