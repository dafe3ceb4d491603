package ring

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/ringlwe/rlkex/utils/sampling"
)

// BoundedUniformSampler wraps a sampling.PRNG and represents the state of a
// sampler of polynomials with coefficients uniform over [0, Bound).
type BoundedUniformSampler struct {
	*baseSampler
	*randomBuffer

	// Exclusive upper bound on the sampled coefficients
	bound uint64

	// 2^bit_length(bound-1) - 1
	mask uint64
}

// NewBoundedUniformSampler creates a new instance of BoundedUniformSampler
// from a PRNG, a ring definition and the distribution parameters X.
// X.Bound must be in [1, Modulus].
func NewBoundedUniformSampler(prng sampling.PRNG, baseRing *Ring, X BoundedUniform) (b *BoundedUniformSampler, err error) {

	if X.Bound == 0 || X.Bound > baseRing.Modulus {
		return nil, fmt.Errorf("invalid BoundedUniform distribution: Bound must be in [1, %d] but is %d", baseRing.Modulus, X.Bound)
	}

	b = new(BoundedUniformSampler)
	b.baseSampler = &baseSampler{}
	b.baseRing = baseRing
	b.prng = prng
	b.randomBuffer = newRandomBuffer()
	b.bound = X.Bound
	b.mask = (1 << uint64(bits.Len64(X.Bound-1))) - 1

	return
}

// Read samples a polynomial with coefficients following a uniform
// distribution over [0, Bound) on pol.
func (b *BoundedUniformSampler) Read(pol Poly) error {
	return b.read(pol, func(a, b, c uint64) uint64 {
		return b
	})
}

// ReadAndAdd samples a polynomial with coefficients following a uniform
// distribution over [0, Bound) and adds it on pol.
func (b *BoundedUniformSampler) ReadAndAdd(pol Poly) error {
	return b.read(pol, func(a, b, c uint64) uint64 {
		return CRed(a+b, c)
	})
}

func (b *BoundedUniformSampler) read(pol Poly, f func(a, b, c uint64) uint64) error {

	var randomUint uint64

	prng := b.prng
	N := b.baseRing.N
	q := b.baseRing.Modulus
	bound := b.bound
	mask := b.mask

	buffer := b.randomBufferN
	byteArrayLength := len(buffer)

	var ptr int
	if ptr = b.ptr; ptr == 0 || ptr == byteArrayLength {
		if _, err := prng.Read(buffer); err != nil {
			return err
		}
		ptr = 0 // for the case where ptr == byteArrayLength
	}

	coeffs := pol.Coeffs

	for i := 0; i < N; i++ {

		// Samples an integer in [0, bound-1]
		for {

			// Refills the buff if it runs empty
			if ptr == byteArrayLength {
				if _, err := prng.Read(buffer); err != nil {
					return err
				}
				ptr = 0
			}

			// Reads bytes from the buff
			randomUint = binary.BigEndian.Uint64(buffer[ptr:ptr+8]) & mask
			ptr += 8

			// If the integer is in [0, bound-1], breaks the loop
			if randomUint < bound {
				break
			}
		}

		coeffs[i] = f(coeffs[i], randomUint, q)
	}

	b.ptr = ptr

	return nil
}

// ReadNew generates a new polynomial with coefficients following a uniform
// distribution over [0, Bound).
func (b *BoundedUniformSampler) ReadNew() (pol Poly, err error) {
	pol = b.baseRing.NewPoly()
	err = b.Read(pol)
	return
}
