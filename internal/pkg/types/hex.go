package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingHexPrefix is returned when a hex-encoded value does not start with "0x" or "0X".
var ErrMissingHexPrefix = errors.New("hex string must start with 0x")

// trimHexPrefix strips the "0x"/"0X" prefix, failing when it is absent.
func trimHexPrefix(s string) (string, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return "", ErrMissingHexPrefix
	}

	return s[2:], nil
}

// HexNumber is an unsigned integer that travels over JSON as a "0x"-prefixed
// hexadecimal string, the way Substrate nodes encode block numbers in headers.
type HexNumber uint64

// ParseHexNumber decodes a "0x"-prefixed hexadecimal string into a HexNumber.
func ParseHexNumber(s string) (HexNumber, error) {
	digits, err := trimHexPrefix(s)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hexadecimal value: %w", err)
	}

	return HexNumber(v), nil
}

// String returns the minimal "0x"-prefixed representation (e.g. "0x1a").
func (h HexNumber) String() string {
	return fmt.Sprintf("0x%x", uint64(h))
}

// Uint64 returns the numeric value.
func (h HexNumber) Uint64() uint64 {
	return uint64(h)
}

// MarshalJSON encodes the number as a JSON hex string.
func (h HexNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON accepts a JSON hex string. Plain JSON numbers are accepted as
// well, since some RPC methods return block numbers unencoded.
func (h *HexNumber) UnmarshalJSON(data []byte) error {
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*h = HexNumber(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex number: %w", err)
	}

	v, err := ParseHexNumber(s)
	if err != nil {
		return err
	}

	*h = v
	return nil
}

// HexBytes is a byte slice encoded as a "0x"-prefixed hex string on the wire.
// A JSON null decodes to a nil slice, which is how nodes report absent storage.
type HexBytes []byte

// ParseHexBytes decodes a "0x"-prefixed hex string.
func ParseHexBytes(s string) (HexBytes, error) {
	digits, err := trimHexPrefix(s)
	if err != nil {
		return nil, err
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("invalid hex bytes: %w", err)
	}

	return HexBytes(b), nil
}

// String returns the lowercase "0x"-prefixed encoding.
func (h HexBytes) String() string {
	return "0x" + hex.EncodeToString(h)
}

// IsEmpty reports whether no bytes are present.
func (h HexBytes) IsEmpty() bool {
	return len(h) == 0
}

// MarshalJSON encodes the bytes as a JSON hex string.
func (h HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a JSON hex string or null.
func (h *HexBytes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*h = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex string: %w", err)
	}

	b, err := ParseHexBytes(s)
	if err != nil {
		return err
	}

	*h = b
	return nil
}
