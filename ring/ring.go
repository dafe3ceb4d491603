// Package ring implements arithmetic in the polynomial rings Z_Q[X]/(X^N + 1)
// for byte-sized moduli Q, along with samplers of random ring elements.
package ring

import (
	"fmt"
	"math/bits"
)

// MinimumRingDegree is the smallest supported ring degree. It keeps the
// packed encoding of per-slot bit vectors to whole bytes.
const MinimumRingDegree = 8

// MaxModulus is the largest supported modulus. Moduli are restricted to a
// single byte so that ring elements admit a one-byte-per-coefficient
// encoding.
const MaxModulus = 0xff

// Ring is a struct storing the degree, modulus and precomputations of a
// negacyclic polynomial ring. The multiplication routine uses an internal
// scratch buffer, so a Ring cannot be used concurrently.
type Ring struct {
	// Polynomial nb.Coefficients
	N int

	// Modulus
	Modulus uint64

	// 2^bit_length(Modulus-1) - 1
	Mask uint64

	// Scratch space for the full convolution computed by Mul
	conv []uint64
}

// NewRing creates a new Ring of degree N and modulus Modulus. N must be a
// power of 2 of at least MinimumRingDegree and Modulus an odd prime of at
// most MaxModulus.
func NewRing(N int, Modulus uint64) (r *Ring, err error) {

	// Checks if N is a power of 2
	if N < MinimumRingDegree || (N&(N-1)) != 0 {
		return nil, fmt.Errorf("invalid ring degree: must be a power of 2 of at least %d", MinimumRingDegree)
	}

	if Modulus > MaxModulus {
		return nil, fmt.Errorf("invalid modulus: %d does not fit in a byte", Modulus)
	}

	if Modulus < 3 || !IsPrime(Modulus) {
		return nil, fmt.Errorf("invalid modulus: %d is not an odd prime", Modulus)
	}

	r = &Ring{}
	r.N = N
	r.Modulus = Modulus
	r.Mask = (1 << uint64(bits.Len64(Modulus-1))) - 1
	r.conv = make([]uint64, N<<1)

	return
}

// NewPoly creates a new polynomial with N coefficients set to zero.
func (r *Ring) NewPoly() Poly {
	return NewPoly(r.N)
}
