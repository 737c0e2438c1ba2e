package substrate

import (
	"fmt"
	"strings"

	"github.com/gabapcia/validatorwatch/internal/activityscan"
	"github.com/gabapcia/validatorwatch/internal/pkg/types"

	"github.com/centrifuge/go-substrate-rpc-client/v4/registry"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/parser"
	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// runtime holds what is needed to decode the events of one runtime version.
type runtime struct {
	specVersion uint32
	events      registry.EventRegistry
}

func newRuntime(specVersion uint32, meta *gsrpc.Metadata) (*runtime, error) {
	events, err := registry.NewFactory().CreateEventRegistry(meta)
	if err != nil {
		return nil, fmt.Errorf("event registry for spec %d: %w", specVersion, err)
	}

	return &runtime{specVersion: specVersion, events: events}, nil
}

// decodeEvents parses System.Events storage into scanner events.
func (r *runtime) decodeEvents(raw types.HexBytes) ([]activityscan.Event, error) {
	data := gsrpc.StorageDataRaw(raw)

	parsed, err := parser.NewEventParser().ParseEvents(r.events, &data)
	if err != nil {
		return nil, fmt.Errorf("%w: events: %w", ErrUnexpectedStorageValue, err)
	}

	events := make([]activityscan.Event, 0, len(parsed))
	for _, e := range parsed {
		pallet, name, _ := strings.Cut(e.Name, ".")

		event := activityscan.Event{Pallet: pallet, Name: name}
		if len(e.Fields) > 0 {
			if key, ok := flattenBytes(e.Fields[0].Value); ok && len(key) > 0 {
				event.Signer = activityscan.AuthorityKey(types.HexBytes(key).String())
			}
		}

		events = append(events, event)
	}

	return events, nil
}

// flattenBytes collects the bytes of a decoded value made only of u8
// leaves, such as an authority id wrapping a [u8; 32] public key.
func flattenBytes(value any) ([]byte, bool) {
	switch v := value.(type) {
	case byte:
		return []byte{v}, true
	case gsrpc.U8:
		return []byte{byte(v)}, true
	case []byte:
		return v, true
	case gsrpc.Bytes:
		return v, true
	case registry.DecodedFields:
		var out []byte
		for _, field := range v {
			b, ok := flattenBytes(field.Value)
			if !ok {
				return nil, false
			}
			out = append(out, b...)
		}
		return out, true
	case []any:
		var out []byte
		for _, item := range v {
			b, ok := flattenBytes(item)
			if !ok {
				return nil, false
			}
			out = append(out, b...)
		}
		return out, true
	default:
		return nil, false
	}
}
