package ring

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ringlwe/rlkex/utils/buffer"
)

// Poly is the structure that contains the coefficients of a polynomial.
// Coefficients are kept reduced in [0, Modulus-1] by the operations of the
// Ring type.
type Poly struct {
	Coeffs []uint64
}

// NewPoly creates a new polynomial with N coefficients set to zero.
func NewPoly(N int) Poly {
	return Poly{Coeffs: make([]uint64, N)}
}

// N returns the number of coefficients of the polynomial, which equals the
// degree of the ring cyclotomic polynomial.
func (pol Poly) N() int {
	return len(pol.Coeffs)
}

// Zero sets all coefficients of the target polynomial to 0.
func (pol Poly) Zero() {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = 0
	}
}

// CopyNew creates an exact copy of the target polynomial.
func (pol Poly) CopyNew() (p Poly) {
	p = NewPoly(pol.N())
	copy(p.Coeffs, pol.Coeffs)
	return
}

// Copy copies the coefficients of p1 on the target polynomial.
// Expects the degree of both polynomials to be identical.
func (pol Poly) Copy(p1 Poly) {
	copy(pol.Coeffs, p1.Coeffs)
}

// Equal returns true if the receiver Poly is equal to the provided other
// Poly, checking for strict equality between the coefficients.
func (pol Poly) Equal(other Poly) bool {

	if len(pol.Coeffs) != len(other.Coeffs) {
		return false
	}

	for i := range pol.Coeffs {
		if pol.Coeffs[i] != other.Coeffs[i] {
			return false
		}
	}

	return true
}

// String returns the concatenation of the two-digit lowercase hexadecimal
// rendering of each coefficient, in slot order.
func (pol Poly) String() string {
	var sb strings.Builder
	sb.Grow(2 * len(pol.Coeffs))
	for _, c := range pol.Coeffs {
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}

// BinarySize returns the serialized size of the polynomial in bytes, which
// is one byte per coefficient.
func (pol Poly) BinarySize() int {
	return pol.N()
}

// Encode writes the coefficients of the polynomial on data, one byte per
// coefficient. It returns the number of written bytes.
func (pol Poly) Encode(data []byte) (ptr int, err error) {

	if len(data) < pol.BinarySize() {
		return 0, fmt.Errorf("data array is too small to write ring.Poly")
	}

	for i, c := range pol.Coeffs {
		if c > 0xff {
			return 0, fmt.Errorf("cannot Encode: coefficient %d does not fit in a byte", c)
		}
		data[i] = uint8(c)
	}

	return pol.BinarySize(), nil
}

// Decode reads the coefficients of the polynomial from data, one byte per
// coefficient. It returns the number of read bytes. The receiver must be
// allocated to the expected degree.
func (pol Poly) Decode(data []byte) (ptr int, err error) {

	if len(data) < pol.BinarySize() {
		return 0, fmt.Errorf("data array is too small to read ring.Poly")
	}

	for i := range pol.Coeffs {
		pol.Coeffs[i] = uint64(data[i])
	}

	return pol.BinarySize(), nil
}

// WriteTo writes the polynomial on an io.Writer. It implements the
// io.WriterTo interface, and will write exactly pol.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface (see utils/buffer), it
// will be wrapped into a bufio.Writer. Since this requires allocations, it
// is preferable to pass a buffer.Writer directly:
//
//   - When writing multiple times to an io.Writer, it is preferable to first
//     wrap the io.Writer in a pre-allocated bufio.Writer.
//   - When writing to a pre-allocated var b []byte, it is preferable to pass
//     buffer.NewBuffer(b) as w.
func (pol Poly) WriteTo(w io.Writer) (n int64, err error) {

	switch w := w.(type) {
	case buffer.Writer:

		data := make([]byte, pol.BinarySize())

		if _, err = pol.Encode(data); err != nil {
			return 0, err
		}

		var inc int64
		if inc, err = buffer.WriteUint8Slice(w, data); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteUint8Slice: %w", err)
		}

		n += inc

		return n, w.Flush()

	default:
		return pol.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads the polynomial from an io.Reader. It implements the
// io.ReaderFrom interface. The receiver must be allocated to the expected
// degree.
//
// Unless r implements the buffer.Reader interface (see utils/buffer), it
// will be wrapped into a bufio.Reader. Since this requires allocations, it
// is preferable to pass a buffer.Reader directly.
func (pol Poly) ReadFrom(r io.Reader) (n int64, err error) {

	switch r := r.(type) {
	case buffer.Reader:

		if pol.N() == 0 {
			return 0, fmt.Errorf("cannot ReadFrom: receiver polynomial is not allocated")
		}

		data := make([]byte, pol.BinarySize())

		var inc int
		if inc, err = buffer.ReadUint8Slice(r, data); err != nil {
			return int64(inc), fmt.Errorf("buffer.ReadUint8Slice: %w", err)
		}

		n += int64(inc)

		_, err = pol.Decode(data)

		return n, err

	default:
		return pol.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the polynomial on a newly allocated slice of bytes.
func (pol Poly) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(pol.BinarySize())
	_, err = pol.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary on
// the polynomial. The receiver must be allocated to the expected degree,
// and len(data) must match its BinarySize.
func (pol Poly) UnmarshalBinary(data []byte) (err error) {
	if len(data) != pol.BinarySize() {
		return fmt.Errorf("cannot UnmarshalBinary: len(data)=%d but expected %d bytes", len(data), pol.BinarySize())
	}
	_, err = pol.ReadFrom(buffer.NewBuffer(data))
	return
}
