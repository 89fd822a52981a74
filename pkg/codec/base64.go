package codec

import (
	"context"
	"encoding/base64"

	"github.com/pkg/errors"

	"github.com/askiada/go-netpipe/pkg/buffer"
)

// Dialect selects a base64 alphabet.
type Dialect struct {
	Name     string
	Encoding *base64.Encoding
}

var (
	// StandardDialect is the RFC 4648 standard alphabet.
	StandardDialect = &Dialect{Name: "standard", Encoding: base64.StdEncoding}
	// URLSafeDialect is the RFC 4648 URL and filename safe alphabet.
	URLSafeDialect = &Dialect{Name: "url-safe", Encoding: base64.URLEncoding}
)

// Base64Decoder decodes a base64-encoded string or [buffer.Buffer] into a raw
// binary buffer. Any other message type passes through unchanged. When the
// upstream transport is stream-based, pair it with a frame decoder such as
// [DelimiterFrameDecoder] so that it only ever sees whole frames.
//
// The decoder holds no per-channel state and is shareable.
type Base64Decoder struct {
	dialect *Dialect
}

// NewBase64Decoder creates a decoder for the given dialect.
func NewBase64Decoder(dialect *Dialect) (*Base64Decoder, error) {
	if dialect == nil || dialect.Encoding == nil {
		return nil, errors.Wrap(ErrDialectMustBeSet, "unable to create base64 decoder")
	}

	return &Base64Decoder{dialect: dialect}, nil
}

func (d *Base64Decoder) Handle(_ context.Context, msg any) (any, error) {
	var src []byte

	switch m := msg.(type) {
	case string:
		src = []byte(m)
	case *buffer.Buffer:
		src = m.Bytes()
	default:
		return msg, nil
	}

	dst := make([]byte, d.dialect.Encoding.DecodedLen(len(src)))

	n, err := d.dialect.Encoding.Decode(dst, src)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode base64 (%s)", d.dialect.Name)
	}

	return buffer.WrappedBuffer(dst[:n]), nil
}

func (d *Base64Decoder) Shareable() {}

// Base64Encoder encodes a binary [buffer.Buffer] into its base64
// representation. Any other message type passes through unchanged.
//
// The encoder holds no per-channel state and is shareable.
type Base64Encoder struct {
	dialect *Dialect
}

// NewBase64Encoder creates an encoder for the given dialect.
func NewBase64Encoder(dialect *Dialect) (*Base64Encoder, error) {
	if dialect == nil || dialect.Encoding == nil {
		return nil, errors.Wrap(ErrDialectMustBeSet, "unable to create base64 encoder")
	}

	return &Base64Encoder{dialect: dialect}, nil
}

func (e *Base64Encoder) Handle(_ context.Context, msg any) (any, error) {
	m, ok := msg.(*buffer.Buffer)
	if !ok {
		return msg, nil
	}

	src := m.Bytes()
	dst := make([]byte, e.dialect.Encoding.EncodedLen(len(src)))
	e.dialect.Encoding.Encode(dst, src)

	return buffer.WrappedBuffer(dst), nil
}

func (e *Base64Encoder) Shareable() {}
