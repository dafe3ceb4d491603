package kex

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ringlwe/rlkex/utils/buffer"
)

// BitVector holds one bit per ring slot. It is the type of the signal and
// of the derived shared secret.
type BitVector []bool

// NewBitVector creates a new BitVector of n bits set to false.
func NewBitVector(n int) BitVector {
	return make(BitVector, n)
}

// Xor evaluates v = v1 XOR v2 elementwise.
// Expects the length of all three vectors to be identical.
func (v BitVector) Xor(v1, v2 BitVector) {
	for i := range v {
		v[i] = v1[i] != v2[i]
	}
}

// Equal returns true if the receiver holds the same bits as other, checking
// for identical lengths.
func (v BitVector) Equal(other BitVector) bool {

	if len(v) != len(other) {
		return false
	}

	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}

	return true
}

// Weight returns the number of bits set to true.
func (v BitVector) Weight() (w int) {
	for _, b := range v {
		if b {
			w++
		}
	}
	return
}

// String renders the vector with one glyph per bit in slot order, '*' where
// the bit is true and a space where it is false.
func (v BitVector) String() string {
	var sb strings.Builder
	sb.Grow(len(v))
	for _, b := range v {
		if b {
			sb.WriteByte('*')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// BinarySize returns the serialized size of the vector in bytes, which is
// one bit per entry.
func (v BitVector) BinarySize() int {
	return len(v) >> 3
}

// Encode packs the bits of the vector on data, bit i going to byte i/8 at
// position i%8. It returns the number of written bytes. The length of the
// vector must be a multiple of 8.
func (v BitVector) Encode(data []byte) (ptr int, err error) {

	if len(v)&7 != 0 {
		return 0, fmt.Errorf("cannot Encode: length %d is not a multiple of 8", len(v))
	}

	if len(data) < v.BinarySize() {
		return 0, fmt.Errorf("data array is too small to write kex.BitVector")
	}

	for i := range data[:v.BinarySize()] {
		var b uint8
		for j := 7; j >= 0; j-- {
			b <<= 1
			if v[i<<3|j] {
				b |= 1
			}
		}
		data[i] = b
	}

	return v.BinarySize(), nil
}

// Decode unpacks the bits of the vector from data. It returns the number of
// read bytes. The receiver must be allocated to the expected length, which
// must be a multiple of 8.
func (v BitVector) Decode(data []byte) (ptr int, err error) {

	if len(v)&7 != 0 {
		return 0, fmt.Errorf("cannot Decode: length %d is not a multiple of 8", len(v))
	}

	if len(data) < v.BinarySize() {
		return 0, fmt.Errorf("data array is too small to read kex.BitVector")
	}

	for i, b := range data[:v.BinarySize()] {
		for j := 0; j < 8; j++ {
			v[i<<3|j] = (b>>j)&1 == 1
		}
	}

	return v.BinarySize(), nil
}

// WriteTo writes the vector on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly v.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface (see utils/buffer), it
// will be wrapped into a bufio.Writer. Since this requires allocations, it
// is preferable to pass a buffer.Writer directly.
func (v BitVector) WriteTo(w io.Writer) (n int64, err error) {

	switch w := w.(type) {
	case buffer.Writer:

		data := make([]byte, v.BinarySize())

		if _, err = v.Encode(data); err != nil {
			return 0, err
		}

		var inc int64
		if inc, err = buffer.WriteUint8Slice(w, data); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteUint8Slice: %w", err)
		}

		n += inc

		return n, w.Flush()

	default:
		return v.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads the vector from an io.Reader. It implements the
// io.ReaderFrom interface. The receiver must be allocated to the expected
// length.
//
// Unless r implements the buffer.Reader interface (see utils/buffer), it
// will be wrapped into a bufio.Reader. Since this requires allocations, it
// is preferable to pass a buffer.Reader directly.
func (v BitVector) ReadFrom(r io.Reader) (n int64, err error) {

	switch r := r.(type) {
	case buffer.Reader:

		if len(v) == 0 {
			return 0, fmt.Errorf("cannot ReadFrom: receiver vector is not allocated")
		}

		data := make([]byte, v.BinarySize())

		var inc int
		if inc, err = buffer.ReadUint8Slice(r, data); err != nil {
			return int64(inc), fmt.Errorf("buffer.ReadUint8Slice: %w", err)
		}

		n += int64(inc)

		_, err = v.Decode(data)

		return n, err

	default:
		return v.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the vector on a newly allocated slice of bytes.
func (v BitVector) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(v.BinarySize())
	_, err = v.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary on
// the vector. The receiver must be allocated to the expected length, and
// len(data) must match its BinarySize.
func (v BitVector) UnmarshalBinary(data []byte) (err error) {
	if len(data) != v.BinarySize() {
		return fmt.Errorf("cannot UnmarshalBinary: len(data)=%d but expected %d bytes", len(data), v.BinarySize())
	}
	_, err = v.ReadFrom(buffer.NewBuffer(data))
	return
}
