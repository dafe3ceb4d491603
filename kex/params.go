// Package kex implements an unauthenticated two-party key exchange over the
// negacyclic rings of the ring package, with rounding reconciliation: both
// parties publish a noisy product of a common random polynomial with their
// secret, one of them additionally publishes a per-coefficient signal bit,
// and each party rounds its own cross product to a bit string under the
// reconciliation bands selected by the signal.
package kex

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"

	"github.com/ringlwe/rlkex/ring"
	"github.com/ringlwe/rlkex/utils/buffer"
)

const (
	// MaxLogN is the log2 of the largest supported ring degree.
	MaxLogN = 16

	// MinLogN is the log2 of the smallest supported ring degree.
	MinLogN = 3

	// MinModulus is the smallest supported modulus, for which the noise
	// bound Q/16 is still at least 1.
	MinModulus = 17
)

// ParamsN128Q251 is the production parameter set: degree 128 and modulus
// 251, the largest prime below 2^8. Smaller moduli down to [MinModulus] can
// be used for manual verification.
var ParamsN128Q251 = ParametersLiteral{
	LogN: 7,
	Q:    251,
}

// ParametersLiteral is a literal representation of key exchange parameters.
// It has public fields and is used to express unchecked user-defined
// parameters literally into Go programs. The [NewParametersFromLiteral]
// function is used to generate the actual checked parameters from the
// literal representation.
type ParametersLiteral struct {
	LogN int
	Q    uint64
}

// Parameters represents a set of checked key exchange parameters: the ring
// and the table of rounding thresholds derived from its modulus. Its fields
// are private and immutable. See [ParametersLiteral] for user-specified
// parameters.
type Parameters struct {
	logN int
	q    uint64

	ringQ *ring.Ring

	// Bounds of the signal window [Q/4, 3Q/4)
	q4, q34 uint64

	// Bounds of the reconciliation bands [3Q/8, 5Q/8) and [Q/8, 7Q/8)
	q18, q38, q58, q78 uint64

	// Exclusive upper bound Q/16 of the noise coefficients
	noiseBound uint64
}

// NewParametersFromLiteral instantiates a set of [Parameters] from a
// [ParametersLiteral] specification, deriving the threshold table from Q
// with integer division. It returns the zero Parameters and a non-nil error
// if the literal is invalid.
func NewParametersFromLiteral(paramDef ParametersLiteral) (params Parameters, err error) {

	if paramDef.LogN < MinLogN || paramDef.LogN > MaxLogN {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: LogN must be in [%d, %d] but is %d", MinLogN, MaxLogN, paramDef.LogN)
	}

	if paramDef.Q < MinModulus {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: Q must be at least %d but is %d", MinModulus, paramDef.Q)
	}

	params = Parameters{
		logN: paramDef.LogN,
		q:    paramDef.Q,
	}

	if params.ringQ, err = ring.NewRing(1<<paramDef.LogN, paramDef.Q); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	q := paramDef.Q
	params.q4 = q / 4
	params.q34 = 3 * q / 4
	params.q18 = q / 8
	params.q38 = 3 * q / 8
	params.q58 = 5 * q / 8
	params.q78 = 7 * q / 8
	params.noiseBound = q / 16

	return
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		LogN: p.logN,
		Q:    p.q,
	}
}

// N returns the ring degree.
func (p Parameters) N() int {
	return 1 << p.logN
}

// LogN returns the log2 of the ring degree.
func (p Parameters) LogN() int {
	return p.logN
}

// Q returns the ring modulus.
func (p Parameters) Q() uint64 {
	return p.q
}

// RingQ returns the underlying [ring.Ring].
func (p Parameters) RingQ() *ring.Ring {
	return p.ringQ
}

// Xs returns the distribution of the secret, uniform over the full
// coefficient range.
func (p Parameters) Xs() ring.DistributionParameters {
	return ring.Uniform{}
}

// Xe returns the distribution of the noise, uniform over [0, Q/16).
func (p Parameters) Xe() ring.DistributionParameters {
	return ring.BoundedUniform{Bound: p.noiseBound}
}

// NoiseBound returns the exclusive upper bound Q/16 of the noise
// coefficients.
func (p Parameters) NoiseBound() uint64 {
	return p.noiseBound
}

// SignalWindow returns the bounds of the half-open window [Q/4, 3Q/4) whose
// complement the signal marks.
func (p Parameters) SignalWindow() (lo, hi uint64) {
	return p.q4, p.q34
}

// InnerWindow returns the bounds of the narrow reconciliation band
// [3Q/8, 5Q/8), applied where the signal bit is false.
func (p Parameters) InnerWindow() (lo, hi uint64) {
	return p.q38, p.q58
}

// OuterWindow returns the bounds of the wide reconciliation band
// [Q/8, 7Q/8), applied where the signal bit is true.
func (p Parameters) OuterWindow() (lo, hi uint64) {
	return p.q18, p.q78
}

// Equal checks two Parameter structs for equality.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// MarshalBinary returns a []byte representation of the parameter set.
// This representation corresponds to the [Parameters.MarshalJSON]
// representation prefixed with its byte length.
func (p Parameters) MarshalBinary() ([]byte, error) {
	buf := buffer.NewBufferSize(p.BinarySize())
	_, err := p.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes on the target Parameters.
func (p *Parameters) UnmarshalBinary(data []byte) (err error) {
	_, err = p.ReadFrom(buffer.NewBuffer(data))
	return
}

// MarshalJSON returns a JSON representation of this parameter set. See
// Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the
// receiver Parameters. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(params)
	return
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (p Parameters) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		data, err := p.MarshalJSON()
		if err != nil {
			return 0, err
		}

		if n, err = buffer.WriteUint32(w, uint32(len(data))); err != nil {
			return n, fmt.Errorf("buffer.WriteUint32: %w", err)
		}

		var inc int
		if inc, err = w.Write(data); err != nil {
			return n + int64(inc), fmt.Errorf("io.Writer.Write: %w", err)
		}

		n += int64(inc)

		return n, w.Flush()
	default:
		return p.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Writer. It implements the
// io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface (see utils/buffer), it
// will be wrapped into a bufio.Reader. Since this requires allocation, it
// is preferable to pass a buffer.Reader directly:
//
//   - When reading multiple values from an io.Reader, it is preferable to
//     first wrap the io.Reader in a pre-allocated bufio.Reader.
//   - When reading from a var b []byte, it is preferable to pass
//     buffer.NewBuffer(b) as r.
func (p *Parameters) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var size uint32
		var inc int
		if inc, err = buffer.ReadUint32(r, &size); err != nil {
			return int64(inc), fmt.Errorf("buffer.ReadUint32: %w", err)
		}

		n += int64(inc)

		data := make([]byte, size)
		if inc, err = r.Read(data); err != nil {
			return n + int64(inc), fmt.Errorf("io.Reader.Read: %w", err)
		}

		return n + int64(inc), p.UnmarshalJSON(data)

	default:
		return p.ReadFrom(bufio.NewReader(r))
	}
}

// BinarySize returns the size in bytes of the marshalled [Parameters]
// object.
func (p Parameters) BinarySize() int {
	// XXX: Byte size is hard to predict without marshalling.
	b, _ := p.MarshalJSON()
	return 4 + len(b)
}
