package ring

import (
	"encoding/binary"

	"github.com/ringlwe/rlkex/utils/sampling"
)

// UniformSampler wraps a sampling.PRNG and represents the state of a sampler
// of polynomials with coefficients uniform over the full ring.
type UniformSampler struct {
	*baseSampler
	*randomBuffer
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG and ring definition.
func NewUniformSampler(prng sampling.PRNG, baseRing *Ring) (u *UniformSampler) {
	u = new(UniformSampler)
	u.baseSampler = &baseSampler{}
	u.baseRing = baseRing
	u.prng = prng
	u.randomBuffer = newRandomBuffer()
	return
}

// Read samples a polynomial with coefficients following a uniform
// distribution over [0, Modulus-1] on pol.
func (u *UniformSampler) Read(pol Poly) error {
	return u.read(pol, func(a, b, c uint64) uint64 {
		return b
	})
}

// ReadAndAdd samples a polynomial with coefficients following a uniform
// distribution over [0, Modulus-1] and adds it on pol.
func (u *UniformSampler) ReadAndAdd(pol Poly) error {
	return u.read(pol, func(a, b, c uint64) uint64 {
		return CRed(a+b, c)
	})
}

func (u *UniformSampler) read(pol Poly, f func(a, b, c uint64) uint64) error {

	var randomUint uint64

	prng := u.prng
	N := u.baseRing.N
	q := u.baseRing.Modulus
	mask := u.baseRing.Mask

	buffer := u.randomBufferN
	byteArrayLength := len(buffer)

	var ptr int
	if ptr = u.ptr; ptr == 0 || ptr == byteArrayLength {
		if _, err := prng.Read(buffer); err != nil {
			return err
		}
		ptr = 0 // for the case where ptr == byteArrayLength
	}

	coeffs := pol.Coeffs

	for i := 0; i < N; i++ {

		// Samples an integer in [0, q-1]
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

			// If the integer is in [0, q-1], breaks the loop
			if randomUint < q {
				break
			}
		}

		coeffs[i] = f(coeffs[i], randomUint, q)
	}

	u.ptr = ptr

	return nil
}

// ReadNew generates a new polynomial with coefficients following a uniform
// distribution over [0, Modulus-1].
func (u *UniformSampler) ReadNew() (pol Poly, err error) {
	pol = u.baseRing.NewPoly()
	err = u.Read(pol)
	return
}

// WithPRNG returns an instance of the target UniformSampler sampling from
// the provided PRNG instead.
func (u *UniformSampler) WithPRNG(prng sampling.PRNG) *UniformSampler {
	return &UniformSampler{
		baseSampler: &baseSampler{
			prng:     prng,
			baseRing: u.baseRing,
		},
		randomBuffer: newRandomBuffer(),
	}
}
