package ring

// Add adds p1 to p2 coefficient wise and applies a modular reduction,
// returning the result on p3.
func (r *Ring) Add(p1, p2, p3 Poly) {
	q := r.Modulus
	p1tmp, p2tmp, p3tmp := p1.Coeffs, p2.Coeffs, p3.Coeffs
	for j := 0; j < r.N; j++ {
		p3tmp[j] = CRed(p1tmp[j]+p2tmp[j], q)
	}
}

// Sub subtracts p2 to p1 coefficient wise and applies a modular reduction,
// returning the result on p3.
func (r *Ring) Sub(p1, p2, p3 Poly) {
	q := r.Modulus
	p1tmp, p2tmp, p3tmp := p1.Coeffs, p2.Coeffs, p3.Coeffs
	for j := 0; j < r.N; j++ {
		p3tmp[j] = CRed((p1tmp[j]+q)-p2tmp[j], q)
	}
}

// Neg sets all coefficients of p1 to their additive inverse, returning the
// result on p2.
func (r *Ring) Neg(p1, p2 Poly) {
	q := r.Modulus
	p1tmp, p2tmp := p1.Coeffs, p2.Coeffs
	for j := 0; j < r.N; j++ {
		p2tmp[j] = CRed(q-p1tmp[j], q)
	}
}

// MulScalar multiplies p1 by the given scalar coefficient wise and applies a
// modular reduction, returning the result on p2.
func (r *Ring) MulScalar(p1 Poly, scalar uint64, p2 Poly) {
	q := r.Modulus
	s := scalar % q
	p1tmp, p2tmp := p1.Coeffs, p2.Coeffs
	for j := 0; j < r.N; j++ {
		p2tmp[j] = (p1tmp[j] * s) % q
	}
}

// Mul multiplies p1 by p2 and returns the result on p3, reducing modulo
// X^N + 1. The inputs must be reduced. p3 is allowed to alias p1 or p2.
func (r *Ring) Mul(p1, p2, p3 Poly) {

	N := r.N
	q := r.Modulus

	conv := r.conv
	for k := range conv {
		conv[k] = 0
	}

	// Full product, of degree 2N-2
	p2tmp := p2.Coeffs
	for i, c1 := range p1.Coeffs[:N] {
		convtmp := conv[i:]
		for j := 0; j < N; j++ {
			convtmp[j] += c1 * p2tmp[j]
		}
	}

	// Negacyclic fold: the term of degree N+k contributes to the term of
	// degree k with a factor -1
	p3tmp := p3.Coeffs
	for k := 0; k < N; k++ {
		p3tmp[k] = CRed((conv[k]%q+q)-conv[k+N]%q, q)
	}
}
