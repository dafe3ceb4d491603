package kex

import (
	"github.com/ringlwe/rlkex/ring"
	"github.com/ringlwe/rlkex/utils/sampling"
)

// Share is the key material of one party: the secret, the noise that blinds
// it and the public element derived from both. Only Public is ever sent to
// the peer; Secret and Noise must not leave the generating party.
type Share struct {
	Secret ring.Poly
	Noise  ring.Poly
	Public ring.Poly
}

// GenShare generates the Share of one party under the common polynomial a,
// reading its randomness from prng: the secret is uniform over the full
// coefficient range, the noise is uniform over [0, Q/16) and the public
// element is a*Secret + 2*Noise. The only failure mode is a prng read
// error, which is propagated.
func (p Parameters) GenShare(a ring.Poly, prng sampling.PRNG) (sh *Share, err error) {

	ringQ := p.ringQ

	xs, err := ring.NewSampler(prng, ringQ, p.Xs())
	if err != nil {
		return nil, err
	}

	xe, err := ring.NewSampler(prng, ringQ, p.Xe())
	if err != nil {
		return nil, err
	}

	sh = &Share{}

	if sh.Secret, err = xs.ReadNew(); err != nil {
		return nil, err
	}

	if sh.Noise, err = xe.ReadNew(); err != nil {
		return nil, err
	}

	sh.Public = ringQ.NewPoly()
	ringQ.Mul(a, sh.Secret, sh.Public)

	e2 := ringQ.NewPoly()
	ringQ.MulScalar(sh.Noise, 2, e2)
	ringQ.Add(sh.Public, e2, sh.Public)

	return
}
