package substrate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gabapcia/validatorwatch/internal/pkg/types"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

const digestPreRuntime = 6

var (
	engineBABE = [4]byte{'B', 'A', 'B', 'E'}
	engineAura = [4]byte{'a', 'u', 'r', 'a'}

	errNoPreRuntimeDigest = errors.New("no pre-runtime digest")
)

// headerResponse is the JSON shape of chain_getHeader.
type headerResponse struct {
	ParentHash string          `json:"parentHash"`
	Number     types.HexNumber `json:"number"`
	StateRoot  string          `json:"stateRoot"`
	Digest     digestResponse  `json:"digest"`
}

type digestResponse struct {
	Logs []types.HexBytes `json:"logs"`
}

// authorSlot locates the block producer. Exactly one of the two modes applies:
// BABE names the authority index directly, Aura gives a slot that selects
// an authority round-robin.
type authorSlot struct {
	index  uint32
	slot   uint64
	isAura bool
}

// resolve returns the position of the author in a validator set of size n.
func (a authorSlot) resolve(n int) (int, bool) {
	if n == 0 {
		return 0, false
	}

	if a.isAura {
		return int(a.slot % uint64(n)), true
	}

	if int(a.index) >= n {
		return 0, false
	}

	return int(a.index), true
}

// findAuthorSlot reads the first BABE or Aura pre-runtime digest of logs.
func findAuthorSlot(logs []types.HexBytes) (authorSlot, error) {
	for _, log := range logs {
		engine, payload, ok, err := decodePreRuntime(log)
		if err != nil {
			return authorSlot{}, err
		}
		if !ok {
			continue
		}

		switch engine {
		case engineBABE:
			return decodeBabePreDigest(payload)
		case engineAura:
			return decodeAuraPreDigest(payload)
		}
	}

	return authorSlot{}, errNoPreRuntimeDigest
}

// decodePreRuntime splits a PreRuntime digest item into engine id and payload.
// ok is false for other digest kinds.
func decodePreRuntime(item []byte) (engine [4]byte, payload []byte, ok bool, err error) {
	d := scale.NewDecoder(bytes.NewReader(item))

	kind, err := d.ReadOneByte()
	if err != nil {
		return engine, nil, false, fmt.Errorf("%w: %w", ErrMalformedDigest, err)
	}

	if kind != digestPreRuntime {
		return engine, nil, false, nil
	}

	if err := d.Read(engine[:]); err != nil {
		return engine, nil, false, fmt.Errorf("%w: engine id: %w", ErrMalformedDigest, err)
	}

	if err := d.Decode(&payload); err != nil {
		return engine, nil, false, fmt.Errorf("%w: payload: %w", ErrMalformedDigest, err)
	}

	return engine, payload, true, nil
}

// decodeBabePreDigest reads the authority index of a Primary (1),
// SecondaryPlain (2) or SecondaryVRF (3) pre-digest.
func decodeBabePreDigest(payload []byte) (authorSlot, error) {
	if len(payload) < 5 {
		return authorSlot{}, fmt.Errorf("%w: BABE pre-digest too short", ErrMalformedDigest)
	}

	switch payload[0] {
	case 1, 2, 3:
		return authorSlot{index: binary.LittleEndian.Uint32(payload[1:5])}, nil
	default:
		return authorSlot{}, fmt.Errorf("%w: unknown BABE pre-digest variant %d", ErrMalformedDigest, payload[0])
	}
}

func decodeAuraPreDigest(payload []byte) (authorSlot, error) {
	if len(payload) < 8 {
		return authorSlot{}, fmt.Errorf("%w: Aura pre-digest too short", ErrMalformedDigest)
	}

	return authorSlot{slot: binary.LittleEndian.Uint64(payload[:8]), isAura: true}, nil
}
