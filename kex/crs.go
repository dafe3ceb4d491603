package kex

import (
	"github.com/zeebo/blake3"

	"github.com/ringlwe/rlkex/ring"
	"github.com/ringlwe/rlkex/utils/sampling"
)

const keySize = 32

// NewSeededPRNG derives a deterministic PRNG from an arbitrary seed by
// hashing it with blake3 into a [sampling.KeyedPRNG] key. Two endpoints
// seeding it identically read the same stream, which lets them derive the
// same common polynomial without transporting it.
func NewSeededPRNG(seed []byte) (*sampling.KeyedPRNG, error) {
	hasher := blake3.New()
	hasher.Write(seed)
	hashOutput := hasher.Sum(nil)
	return sampling.NewKeyedPRNG(hashOutput[:keySize])
}

// GenCommonPoly samples the common public polynomial, uniform over the ring,
// reading its randomness from prng. It plays the role of a Diffie-Hellman
// generator: both parties must use the same one.
func (p Parameters) GenCommonPoly(prng sampling.PRNG) (ring.Poly, error) {
	return ring.NewUniformSampler(prng, p.ringQ).ReadNew()
}
