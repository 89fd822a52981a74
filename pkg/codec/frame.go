package codec

import (
	"bytes"
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-netpipe/pkg/buffer"
)

// DelimiterFrameDecoder splits a byte stream into frames separated by a
// delimiter. Incoming buffers are accumulated until at least one delimiter is
// seen: a call completing no frame returns nil (message consumed, awaiting
// more input), a call completing exactly one frame returns that frame as a
// [buffer.Buffer], and a call completing several returns them as a
// []*buffer.Buffer in stream order. The delimiter is stripped from the
// frames. Any non-buffer message passes through unchanged.
//
// The decoder buffers partial frames between calls, so it is not shareable:
// create one per pipeline.
type DelimiterFrameDecoder struct {
	delimiter      []byte
	maxFrameLength int
	cumulation     []byte
}

// NewDelimiterFrameDecoder creates a frame decoder. maxFrameLength bounds the
// bytes buffered while waiting for a delimiter; a frame growing beyond it
// fails the traversal with [ErrFrameTooLong].
func NewDelimiterFrameDecoder(maxFrameLength int, delimiter []byte) (*DelimiterFrameDecoder, error) {
	if maxFrameLength <= 0 {
		return nil, errors.Wrap(ErrMaxFrameLength, "unable to create frame decoder")
	}

	if len(delimiter) == 0 {
		return nil, errors.Wrap(ErrDelimiterMustBeSet, "unable to create frame decoder")
	}

	return &DelimiterFrameDecoder{
		delimiter:      delimiter,
		maxFrameLength: maxFrameLength,
	}, nil
}

func (d *DelimiterFrameDecoder) Handle(_ context.Context, msg any) (any, error) {
	m, ok := msg.(*buffer.Buffer)
	if !ok {
		return msg, nil
	}

	d.cumulation = append(d.cumulation, m.Bytes()...)

	var frames []*buffer.Buffer

	for {
		idx := bytes.Index(d.cumulation, d.delimiter)
		if idx < 0 {
			if len(d.cumulation) > d.maxFrameLength {
				buffered := len(d.cumulation)
				d.cumulation = nil

				return nil, errors.Wrapf(ErrFrameTooLong, "%d bytes buffered, max %d", buffered, d.maxFrameLength)
			}

			break
		}

		if idx > d.maxFrameLength {
			d.cumulation = nil

			return nil, errors.Wrapf(ErrFrameTooLong, "frame of %d bytes, max %d", idx, d.maxFrameLength)
		}

		frame := make([]byte, idx)
		copy(frame, d.cumulation[:idx])
		frames = append(frames, buffer.WrappedBuffer(frame))

		d.cumulation = d.cumulation[idx+len(d.delimiter):]
	}

	switch len(frames) {
	case 0:
		return nil, nil
	case 1:
		return frames[0], nil
	default:
		return frames, nil
	}
}

// Pending returns the number of bytes buffered while waiting for the next
// delimiter.
func (d *DelimiterFrameDecoder) Pending() int {
	return len(d.cumulation)
}
