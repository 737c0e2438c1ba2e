package substrate

import (
	"encoding/binary"
	"testing"

	"github.com/gabapcia/validatorwatch/internal/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// preRuntime builds a PreRuntime digest item for payloads shorter than 64 bytes.
func preRuntime(engine string, payload []byte) types.HexBytes {
	item := []byte{digestPreRuntime}
	item = append(item, engine...)
	item = append(item, byte(len(payload)<<2))
	return append(item, payload...)
}

func babePayload(variant byte, index uint32, slot uint64) []byte {
	payload := []byte{variant}
	payload = binary.LittleEndian.AppendUint32(payload, index)
	return binary.LittleEndian.AppendUint64(payload, slot)
}

func auraPayload(slot uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, slot)
}

func TestFindAuthorSlot(t *testing.T) {
	t.Run("BABE primary", func(t *testing.T) {
		slot, err := findAuthorSlot([]types.HexBytes{preRuntime("BABE", babePayload(1, 7, 99))})
		require.NoError(t, err)
		assert.Equal(t, authorSlot{index: 7}, slot)
	})

	t.Run("BABE secondary plain", func(t *testing.T) {
		slot, err := findAuthorSlot([]types.HexBytes{preRuntime("BABE", babePayload(2, 3, 99))})
		require.NoError(t, err)
		assert.Equal(t, uint32(3), slot.index)
	})

	t.Run("Aura", func(t *testing.T) {
		slot, err := findAuthorSlot([]types.HexBytes{preRuntime("aura", auraPayload(1_000_003))})
		require.NoError(t, err)
		assert.True(t, slot.isAura)
		assert.Equal(t, uint64(1_000_003), slot.slot)
	})

	t.Run("other digest items are ignored", func(t *testing.T) {
		seal := types.HexBytes{5, 'B', 'A', 'B', 'E', 0x04, 0xff}
		slot, err := findAuthorSlot([]types.HexBytes{seal, preRuntime("BABE", babePayload(3, 1, 5))})
		require.NoError(t, err)
		assert.Equal(t, uint32(1), slot.index)
	})

	t.Run("unknown engines are skipped", func(t *testing.T) {
		_, err := findAuthorSlot([]types.HexBytes{preRuntime("FRNK", []byte{1, 2})})
		assert.ErrorIs(t, err, errNoPreRuntimeDigest)
	})

	t.Run("no logs", func(t *testing.T) {
		_, err := findAuthorSlot(nil)
		assert.ErrorIs(t, err, errNoPreRuntimeDigest)
	})

	t.Run("truncated item", func(t *testing.T) {
		_, err := findAuthorSlot([]types.HexBytes{{digestPreRuntime, 'B', 'A'}})
		assert.ErrorIs(t, err, ErrMalformedDigest)
	})

	t.Run("unknown BABE variant", func(t *testing.T) {
		_, err := findAuthorSlot([]types.HexBytes{preRuntime("BABE", babePayload(9, 0, 0))})
		assert.ErrorIs(t, err, ErrMalformedDigest)
	})

	t.Run("short Aura payload", func(t *testing.T) {
		_, err := findAuthorSlot([]types.HexBytes{preRuntime("aura", []byte{1, 2, 3})})
		assert.ErrorIs(t, err, ErrMalformedDigest)
	})
}

func TestAuthorSlot_Resolve(t *testing.T) {
	t.Run("index within the set", func(t *testing.T) {
		i, ok := authorSlot{index: 2}.resolve(3)
		assert.True(t, ok)
		assert.Equal(t, 2, i)
	})

	t.Run("index outside the set", func(t *testing.T) {
		_, ok := authorSlot{index: 3}.resolve(3)
		assert.False(t, ok)
	})

	t.Run("aura slot wraps around", func(t *testing.T) {
		i, ok := authorSlot{slot: 10, isAura: true}.resolve(4)
		assert.True(t, ok)
		assert.Equal(t, 2, i)
	})

	t.Run("empty set", func(t *testing.T) {
		_, ok := authorSlot{slot: 10, isAura: true}.resolve(0)
		assert.False(t, ok)
	})
}
