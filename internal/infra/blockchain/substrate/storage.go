package substrate

import (
	"encoding/binary"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/cespare/xxhash/v2"
)

// imOnlineKeyType is the session key type id of heartbeat signing keys.
var imOnlineKeyType = [4]byte{'i', 'm', 'o', 'n'}

// twox64 is xxHash64 with seed 0 in little endian.
func twox64(data []byte) []byte {
	return twoxWithSeeds(data, 0)
}

// twox128 concatenates xxHash64 of data with seeds 0 and 1, each little endian.
func twox128(data []byte) []byte {
	return twoxWithSeeds(data, 0, 1)
}

func twoxWithSeeds(data []byte, seeds ...uint64) []byte {
	out := make([]byte, 0, 8*len(seeds))
	for _, seed := range seeds {
		d := xxhash.NewWithSeed(seed)
		_, _ = d.Write(data)
		out = binary.LittleEndian.AppendUint64(out, d.Sum64())
	}

	return out
}

// twox64Concat is the map hasher that keeps the key readable after its hash.
func twox64Concat(data []byte) []byte {
	return append(twox64(data), data...)
}

// storageKey is the key of a plain storage value.
func storageKey(pallet, item string) []byte {
	return append(twox128([]byte(pallet)), twox128([]byte(item))...)
}

var (
	systemEventsKey      = storageKey("System", "Events")
	timestampNowKey      = storageKey("Timestamp", "Now")
	sessionValidatorsKey = storageKey("Session", "Validators")
)

// sessionKeyID is the SCALE tuple (KeyTypeId, Vec<u8>) indexing Session.KeyOwner.
type sessionKeyID struct {
	KeyType [4]byte
	Key     []byte
}

// keyOwnerKey is the Session.KeyOwner entry of an ImOnline authority key.
func keyOwnerKey(authorityKey []byte) ([]byte, error) {
	encoded, err := codec.Encode(sessionKeyID{KeyType: imOnlineKeyType, Key: authorityKey})
	if err != nil {
		return nil, err
	}

	return append(storageKey("Session", "KeyOwner"), twox64Concat(encoded)...), nil
}
