package codec

import (
	"bytes"
	"context"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"

	"github.com/askiada/go-netpipe/pkg/buffer"
)

// LZ4Encoder compresses a binary [buffer.Buffer] into an LZ4 frame. Any other
// message type passes through unchanged.
//
// The encoder holds no per-channel state and is shareable.
type LZ4Encoder struct{}

func NewLZ4Encoder() *LZ4Encoder {
	return &LZ4Encoder{}
}

func (e *LZ4Encoder) Handle(_ context.Context, msg any) (any, error) {
	m, ok := msg.(*buffer.Buffer)
	if !ok {
		return msg, nil
	}

	var out bytes.Buffer

	w := lz4.NewWriter(&out)

	_, err := w.Write(m.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "unable to compress lz4")
	}

	err = w.Close()
	if err != nil {
		return nil, errors.Wrap(err, "unable to flush lz4 frame")
	}

	return buffer.WrappedBuffer(out.Bytes()), nil
}

func (e *LZ4Encoder) Shareable() {}

// LZ4Decoder decompresses an LZ4 frame held in a binary [buffer.Buffer]. Any
// other message type passes through unchanged.
//
// The decoder holds no per-channel state and is shareable.
type LZ4Decoder struct{}

func NewLZ4Decoder() *LZ4Decoder {
	return &LZ4Decoder{}
}

func (d *LZ4Decoder) Handle(_ context.Context, msg any) (any, error) {
	m, ok := msg.(*buffer.Buffer)
	if !ok {
		return msg, nil
	}

	data, err := io.ReadAll(lz4.NewReader(bytes.NewReader(m.Bytes())))
	if err != nil {
		return nil, errors.Wrap(err, "unable to decompress lz4")
	}

	return buffer.WrappedBuffer(data), nil
}

func (d *LZ4Decoder) Shareable() {}
