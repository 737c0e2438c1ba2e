package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type scanInput struct {
		StartBlock int64  `json:"startBlock" validate:"gte=0"`
		BatchSize  int    `json:"batchSize,omitempty" validate:"gte=0,lte=500"`
		Endpoint   string `validate:"required,url"`
	}

	t.Run("accepts a valid struct", func(t *testing.T) {
		err := Validate(scanInput{StartBlock: 10, BatchSize: 50, Endpoint: "wss://rpc.example.org:443"})
		assert.NoError(t, err)
	})

	t.Run("reports the json field name", func(t *testing.T) {
		err := Validate(scanInput{StartBlock: -1, Endpoint: "wss://rpc.example.org"})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'startBlock': value '-1' does not meet the requirements for the 'gte' validation")
	})

	t.Run("falls back to the go field name", func(t *testing.T) {
		err := Validate(scanInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "'Endpoint'")
	})

	t.Run("collects every violation", func(t *testing.T) {
		err := Validate(scanInput{StartBlock: -5, BatchSize: 1000})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "'startBlock'")
		assert.Contains(t, err.Error(), "'batchSize'")
		assert.Contains(t, err.Error(), "'Endpoint'")
	})

	t.Run("rejects non-struct input without the sentinel", func(t *testing.T) {
		err := Validate(42)

		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrValidationFailed))
	})
}

func TestFormatError(t *testing.T) {
	t.Run("passes through unrelated errors", func(t *testing.T) {
		original := errors.New("boom")
		assert.Equal(t, original, formatError(original))
	})
}
