// Package buffer implements the binary encoding helpers of the module. The
// Writer and Reader interfaces describe the subset of bufio.Writer and
// bufio.Reader that the encoding routines need, so that values can be
// written either to a stream or, through the Buffer type, to a
// pre-allocated byte slice without copies.
package buffer

import (
	"fmt"
	"io"
)

// Writer is the interface of writers exposing their internal buffer. It is
// implemented by bufio.Writer and by Buffer.
type Writer interface {
	io.Writer
	Flush() (err error)
	AvailableBuffer() []byte
	Available() int
}

// Reader is the interface of readers exposing their internal buffer. It is
// implemented by bufio.Reader and by Buffer.
type Reader interface {
	io.Reader
	Size() int
	Peek(n int) ([]byte, error)
	Discard(n int) (discarded int, err error)
}

// Buffer is a fixed-capacity []byte-backed buffer implementing both Writer
// and Reader. It never grows its backing slice: writing past the capacity
// is an error, which keeps encodings at their documented fixed sizes.
type Buffer struct {
	buf  []byte
	wOff int
	rOff int
}

// NewBuffer wraps buff as a Buffer. Writes start at buff[0] and overwrite
// the existing content; reads also start at buff[0].
func NewBuffer(buff []byte) *Buffer {
	return &Buffer{buf: buff}
}

// NewBufferSize allocates a new Buffer of the given capacity.
func NewBufferSize(size int) *Buffer {
	return &Buffer{buf: make([]byte, size)}
}

// Write copies p at the write offset. It returns an error if p does not fit
// in the remaining capacity.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if b.wOff+len(p) > cap(b.buf) {
		return 0, fmt.Errorf("buffer too small")
	}
	n = copy(b.buf[b.wOff:], p)
	b.wOff += n
	return n, nil
}

// Flush is a no-op on a slice-backed buffer. It is only present to satisfy
// the Writer interface.
func (b *Buffer) Flush() (err error) {
	return nil
}

// AvailableBuffer returns an empty slice aliasing the unwritten tail of the
// buffer, to be appended to and passed to Write. It is invalidated by the
// next write.
func (b *Buffer) AvailableBuffer() []byte {
	return b.buf[b.wOff:][:0]
}

// Available returns the remaining write capacity in bytes.
func (b *Buffer) Available() int {
	return len(b.buf) - b.wOff
}

// Bytes returns the backing slice.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Reset rewinds both the read and the write offset.
func (b *Buffer) Reset() {
	b.wOff = 0
	b.rOff = 0
}

// Read copies up to len(p) bytes from the read offset into p, returning
// io.EOF if fewer than len(p) bytes remain.
func (b *Buffer) Read(p []byte) (n int, err error) {
	n = copy(p, b.buf[b.rOff:])
	b.rOff += n
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size returns the number of unread bytes.
func (b *Buffer) Size() int {
	return len(b.buf) - b.rOff
}

// Peek returns the next n unread bytes as a reslice of the backing array,
// without advancing the read offset. It returns io.EOF along with the
// remaining bytes if fewer than n are available.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if b.rOff+n > len(b.buf) {
		return b.buf[b.rOff:], io.EOF
	}
	return b.buf[b.rOff : b.rOff+n], nil
}

// Discard skips the next n unread bytes. If fewer than n bytes remain, it
// skips all of them and returns io.EOF.
func (b *Buffer) Discard(n int) (discarded int, err error) {
	if remain := len(b.buf) - b.rOff; n > remain {
		b.rOff = len(b.buf)
		return remain, io.EOF
	}
	b.rOff += n
	return n, nil
}
