package codec

import (
	"context"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/askiada/go-netpipe/pkg/buffer"
)

// encMode encodes with Core Deterministic Encoding (RFC 8949 §4.2) so the
// same logical message always produces identical bytes on the wire.
var encMode cbor.EncMode

// decMode decodes standard CBOR, mapping any-typed targets to
// map[string]any.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBOREncoder marshals a message into a binary [buffer.Buffer] holding its
// CBOR encoding. Buffers and strings pass through unchanged, they are already
// wire material.
//
// The encoder holds no per-channel state and is shareable.
type CBOREncoder struct{}

func NewCBOREncoder() *CBOREncoder {
	return &CBOREncoder{}
}

func (e *CBOREncoder) Handle(_ context.Context, msg any) (any, error) {
	switch msg.(type) {
	case *buffer.Buffer, string:
		return msg, nil
	}

	data, err := encMode.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode cbor")
	}

	return buffer.WrappedBuffer(data), nil
}

func (e *CBOREncoder) Shareable() {}

// CBORDecoder unmarshals a binary [buffer.Buffer] holding CBOR into a Go
// value. Any other message type passes through unchanged.
//
// The decoder holds no per-channel state and is shareable.
type CBORDecoder struct{}

func NewCBORDecoder() *CBORDecoder {
	return &CBORDecoder{}
}

func (d *CBORDecoder) Handle(_ context.Context, msg any) (any, error) {
	m, ok := msg.(*buffer.Buffer)
	if !ok {
		return msg, nil
	}

	var value any

	err := decMode.Unmarshal(m.Bytes(), &value)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode cbor")
	}

	return value, nil
}

func (d *CBORDecoder) Shareable() {}
