package eventlog

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Timestamps are written as tag 0 RFC 3339 strings so a log stays
// readable with generic CBOR tooling and keeps nanoseconds.
var (
	encMode = mustEncMode(cbor.EncOptions{
		Time:        cbor.TimeRFC3339Nano,
		TimeTag:     cbor.EncTagRequired,
		IndefLength: cbor.IndefLengthForbidden,
	})
	// Limits keep a corrupt log from allocating much; an event is a
	// flat map of seven keys.
	decMode = mustDecMode(cbor.DecOptions{
		TimeTag:          cbor.DecTagOptional,
		DupMapKey:        cbor.DupMapKeyQuiet,
		MaxArrayElements: 1024,
		MaxMapPairs:      64,
		MaxNestedLevels:  4,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("eventlog: cbor encoder mode: %v", err))
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("eventlog: cbor decoder mode: %v", err))
	}
	return m
}

// EncodeEvent returns the CBOR form of one event.
func EncodeEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// DecodeEvent parses one CBOR event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder returns a stream encoder writing events to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a stream decoder reading events from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
