package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexNumber_UnmarshalJSON(t *testing.T) {
	t.Run("valid lowercase hex", func(t *testing.T) {
		var h HexNumber

		err := json.Unmarshal([]byte(`"0x1a"`), &h)
		require.NoError(t, err)
		assert.Equal(t, HexNumber(26), h)
	})

	t.Run("valid uppercase hex", func(t *testing.T) {
		var h HexNumber

		err := json.Unmarshal([]byte(`"0X2F"`), &h)
		require.NoError(t, err)
		assert.Equal(t, HexNumber(47), h)
	})

	t.Run("plain json number", func(t *testing.T) {
		var h HexNumber

		err := json.Unmarshal([]byte(`42`), &h)
		require.NoError(t, err)
		assert.Equal(t, HexNumber(42), h)
	})

	t.Run("missing 0x prefix", func(t *testing.T) {
		var h HexNumber

		err := json.Unmarshal([]byte(`"1a"`), &h)
		assert.ErrorIs(t, err, ErrMissingHexPrefix)
	})

	t.Run("invalid hex characters", func(t *testing.T) {
		var h HexNumber

		err := json.Unmarshal([]byte(`"0xZZZ"`), &h)
		require.Error(t, err)
	})

	t.Run("not a string or number", func(t *testing.T) {
		var h HexNumber

		err := json.Unmarshal([]byte(`{}`), &h)
		require.Error(t, err)
	})
}

func TestHexNumber_String(t *testing.T) {
	assert.Equal(t, "0x0", HexNumber(0).String())
	assert.Equal(t, "0xff", HexNumber(255).String())
	assert.Equal(t, uint64(255), HexNumber(255).Uint64())
}

func TestHexNumber_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(HexNumber(4096))
	require.NoError(t, err)
	assert.JSONEq(t, `"0x1000"`, string(data))
}

func TestHexBytes_UnmarshalJSON(t *testing.T) {
	t.Run("decodes hex payload", func(t *testing.T) {
		var h HexBytes

		err := json.Unmarshal([]byte(`"0x0102ff"`), &h)
		require.NoError(t, err)
		assert.Equal(t, HexBytes{0x01, 0x02, 0xff}, h)
		assert.False(t, h.IsEmpty())
	})

	t.Run("null decodes to empty", func(t *testing.T) {
		h := HexBytes{0x01}

		err := json.Unmarshal([]byte(`null`), &h)
		require.NoError(t, err)
		assert.Nil(t, h)
		assert.True(t, h.IsEmpty())
	})

	t.Run("odd length is rejected", func(t *testing.T) {
		var h HexBytes

		err := json.Unmarshal([]byte(`"0x123"`), &h)
		require.Error(t, err)
	})

	t.Run("missing prefix is rejected", func(t *testing.T) {
		var h HexBytes

		err := json.Unmarshal([]byte(`"0102"`), &h)
		assert.ErrorIs(t, err, ErrMissingHexPrefix)
	})
}

func TestHexBytes_String(t *testing.T) {
	assert.Equal(t, "0xdeadbeef", HexBytes{0xde, 0xad, 0xbe, 0xef}.String())
	assert.Equal(t, "0x", HexBytes(nil).String())
}
