package codec

import (
	"context"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/askiada/go-netpipe/pkg/buffer"
)

// zstdEncoder and zstdDecoder are shared by all stage instances; EncodeAll
// and DecodeAll are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error

	zstdEncoder, err = zstd.NewWriter(nil)
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// ZstdEncoder compresses a binary [buffer.Buffer] with zstd. Any other
// message type passes through unchanged.
//
// The encoder holds no per-channel state and is shareable.
type ZstdEncoder struct{}

func NewZstdEncoder() *ZstdEncoder {
	return &ZstdEncoder{}
}

func (e *ZstdEncoder) Handle(_ context.Context, msg any) (any, error) {
	m, ok := msg.(*buffer.Buffer)
	if !ok {
		return msg, nil
	}

	return buffer.WrappedBuffer(zstdEncoder.EncodeAll(m.Bytes(), nil)), nil
}

func (e *ZstdEncoder) Shareable() {}

// ZstdDecoder decompresses a zstd-compressed binary [buffer.Buffer]. Any
// other message type passes through unchanged.
//
// The decoder holds no per-channel state and is shareable.
type ZstdDecoder struct{}

func NewZstdDecoder() *ZstdDecoder {
	return &ZstdDecoder{}
}

func (d *ZstdDecoder) Handle(_ context.Context, msg any) (any, error) {
	m, ok := msg.(*buffer.Buffer)
	if !ok {
		return msg, nil
	}

	data, err := zstdDecoder.DecodeAll(m.Bytes(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decompress zstd")
	}

	return buffer.WrappedBuffer(data), nil
}

func (d *ZstdDecoder) Shareable() {}
