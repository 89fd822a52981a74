// Package buffer provides the byte buffer consumed by codec stages: a byte
// sequence with a read cursor. No pooling strategy is mandated.
package buffer

import (
	"github.com/pkg/errors"
)

var ErrInsufficientBytes = errors.New("not enough readable bytes")

// Buffer is a readable and writable byte sequence with a reader index.
// Writes append at the end; reads advance the reader index.
type Buffer struct {
	buf []byte
	r   int
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// WrappedBuffer creates a buffer taking ownership of p without copying.
func WrappedBuffer(p []byte) *Buffer {
	return &Buffer{buf: p}
}

// CopiedBuffer creates a buffer holding a copy of s.
func CopiedBuffer(s string) *Buffer {
	return &Buffer{buf: []byte(s)}
}

// Len returns the total number of bytes held, read or not.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// ReaderIndex returns the current read cursor position.
func (b *Buffer) ReaderIndex() int {
	return b.r
}

// ReadableBytes returns the number of bytes left to read.
func (b *Buffer) ReadableBytes() int {
	return len(b.buf) - b.r
}

// Bytes returns the unread portion of the buffer without advancing the
// cursor. The returned slice aliases the buffer's storage.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.r:]
}

// ReadBytes reads and returns the next n bytes, advancing the cursor.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > b.ReadableBytes() {
		return nil, errors.Wrapf(ErrInsufficientBytes, "unable to read %d bytes, %d readable", n, b.ReadableBytes())
	}

	p := b.buf[b.r : b.r+n]
	b.r += n

	return p, nil
}

// Skip advances the cursor by n bytes.
func (b *Buffer) Skip(n int) error {
	if n < 0 || n > b.ReadableBytes() {
		return errors.Wrapf(ErrInsufficientBytes, "unable to skip %d bytes, %d readable", n, b.ReadableBytes())
	}

	b.r += n

	return nil
}

// Write appends p to the buffer. It implements io.Writer and never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)

	return len(p), nil
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	b.buf = append(b.buf, s...)

	return len(s), nil
}

// String returns the unread portion as a string.
func (b *Buffer) String() string {
	return string(b.Bytes())
}
