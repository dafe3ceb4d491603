package kex

import (
	"fmt"

	"github.com/ringlwe/rlkex/ring"
)

// Signal derives the reconciliation signal from the public element of the
// designated signal producer: bit i is set when coefficient i falls outside
// the window [Q/4, 3Q/4), that is in one of the two outer quarters of the
// coefficient range. Both parties must round under the same signal.
//
// Signal panics if a coefficient is not reduced, since an unreduced
// coefficient can only be the product of a misuse of the ring API.
func (p Parameters) Signal(pub ring.Poly) BitVector {

	w := NewBitVector(p.N())

	for i, c := range pub.Coeffs {
		if c >= p.q {
			// Sanity check
			panic(fmt.Errorf("cannot Signal: coefficient %d is not reduced modulo %d", c, p.q))
		}
		w[i] = !(p.q4 <= c && c < p.q34)
	}

	return w
}

// SecretBits derives the shared bits of one party from the signal w, the
// party's own secret and the public element of the peer. The bits classify
// the coefficients of the cross product secret*peerPublic: where w is false
// the bit marks the complement of the narrow band [3Q/8, 5Q/8), where w is
// true the complement of the wide band [Q/8, 7Q/8). The two parties compute
// their cross products from different operands and agree on a bit whenever
// the discrepancy stays within the gap between the two bands.
//
// SecretBits panics if the length of w does not match the ring degree.
func (p Parameters) SecretBits(w BitVector, secret, peerPublic ring.Poly) BitVector {

	if len(w) != p.N() {
		// Sanity check
		panic(fmt.Errorf("cannot SecretBits: signal length %d does not match ring degree %d", len(w), p.N()))
	}

	cross := p.ringQ.NewPoly()
	p.ringQ.Mul(secret, peerPublic, cross)

	bits := NewBitVector(p.N())

	for i, c := range cross.Coeffs {
		if !w[i] {
			bits[i] = !(p.q38 <= c && c < p.q58)
		} else {
			bits[i] = !(p.q18 <= c && c < p.q78)
		}
	}

	return bits
}
