package ring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"testing"

	"github.com/ringlwe/rlkex/utils/sampling"

	"github.com/stretchr/testify/require"
)

func testString(opname string, r *Ring) string {
	return fmt.Sprintf("%s/N=%d/Q=%d", opname, r.N, r.Modulus)
}

type testParametersLiteral struct {
	N       int
	Modulus uint64
}

var testParameters = []testParametersLiteral{
	{N: 128, Modulus: 251},
	{N: 16, Modulus: 97},
}

type testParams struct {
	ringQ          *Ring
	prng           sampling.PRNG
	uniformSampler *UniformSampler
}

func genTestParams(p testParametersLiteral) (tc *testParams, err error) {

	tc = new(testParams)

	if tc.ringQ, err = NewRing(p.N, p.Modulus); err != nil {
		return nil, err
	}
	if tc.prng, err = sampling.NewPRNG(); err != nil {
		return nil, err
	}
	tc.uniformSampler = NewUniformSampler(tc.prng, tc.ringQ)
	return
}

func TestRing(t *testing.T) {

	testNewRing(t)
	testPoly(t)
	testDistribution(t)

	for _, p := range testParameters {

		tc, err := genTestParams(p)
		if err != nil {
			t.Fatal(err)
		}

		testPRNG(tc, t)
		testOperations(tc, t)
		testMul(tc, t)
		testSampler(tc, t)
		testMarshalBinary(tc, t)
		testWriterAndReader(tc, t)
	}
}

func testNewRing(t *testing.T) {
	t.Run("NewRing", func(t *testing.T) {
		r, err := NewRing(0, 251)
		require.Nil(t, r)
		require.Error(t, err)

		r, err = NewRing(4, 251) // Degree below the minimum
		require.Nil(t, r)
		require.Error(t, err)

		r, err = NewRing(12, 251) // Degree not a power of 2
		require.Nil(t, r)
		require.Error(t, err)

		r, err = NewRing(128, 256) // Modulus above MaxModulus
		require.Nil(t, r)
		require.Error(t, err)

		r, err = NewRing(128, 2) // Even prime
		require.Nil(t, r)
		require.Error(t, err)

		r, err = NewRing(128, 249) // 249 = 3*83 is not prime
		require.Nil(t, r)
		require.Error(t, err)

		r, err = NewRing(128, 251)
		require.NotNil(t, r)
		require.NoError(t, err)
		require.Equal(t, uint64(0xff), r.Mask)

		r, err = NewRing(8, 3)
		require.NotNil(t, r)
		require.NoError(t, err)
	})
}

func testPoly(t *testing.T) {
	t.Run("Poly", func(t *testing.T) {

		pol := Poly{Coeffs: []uint64{0, 1, 171, 250}}
		require.Equal(t, "0001abfa", pol.String())
		require.Equal(t, 4, pol.N())

		cpy := pol.CopyNew()
		require.True(t, pol.Equal(cpy))

		cpy.Zero()
		require.False(t, pol.Equal(cpy))
		require.Equal(t, "00000000", cpy.String())

		cpy.Copy(pol)
		require.True(t, pol.Equal(cpy))

		require.False(t, pol.Equal(NewPoly(8)))
	})
}

func testDistribution(t *testing.T) {
	t.Run("Distribution/JSON", func(t *testing.T) {

		for _, X := range []DistributionParameters{Uniform{}, BoundedUniform{Bound: 15}} {

			data, err := json.Marshal(X)
			require.NoError(t, err)

			m := map[string]interface{}{}
			require.NoError(t, json.Unmarshal(data, &m))

			XTest, err := ParametersFromMap(m)
			require.NoError(t, err)
			require.Equal(t, X, XTest)
		}

		_, err := ParametersFromMap(map[string]interface{}{"Type": "Gaussian"})
		require.Error(t, err)

		_, err = ParametersFromMap(map[string]interface{}{"Bound": float64(15)})
		require.Error(t, err)

		_, err = ParametersFromMap(map[string]interface{}{"Type": boundedUniformDistName, "Bound": 1.5})
		require.Error(t, err)
	})
}

func testPRNG(tc *testParams, t *testing.T) {

	t.Run(testString("PRNG", tc.ringQ), func(t *testing.T) {

		prng1, err := sampling.NewKeyedPRNG(nil)
		require.NoError(t, err)

		prng2, err := sampling.NewKeyedPRNG(nil)
		require.NoError(t, err)

		crsGenerator1 := NewUniformSampler(prng1, tc.ringQ)
		crsGenerator2 := NewUniformSampler(prng2, tc.ringQ)

		p0, err := crsGenerator1.ReadNew()
		require.NoError(t, err)

		p1, err := crsGenerator2.ReadNew()
		require.NoError(t, err)

		require.True(t, p0.Equal(p1))
	})
}

func testOperations(tc *testParams, t *testing.T) {

	ringQ := tc.ringQ
	N := ringQ.N
	q := ringQ.Modulus

	t.Run(testString("Add", tc.ringQ), func(t *testing.T) {

		p1, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)
		p2, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		p3 := ringQ.NewPoly()
		ringQ.Add(p1, p2, p3)

		for j := 0; j < N; j++ {
			require.Equal(t, (p1.Coeffs[j]+p2.Coeffs[j])%q, p3.Coeffs[j])
		}
	})

	t.Run(testString("Sub", tc.ringQ), func(t *testing.T) {

		p1, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)
		p2, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		p3 := ringQ.NewPoly()
		ringQ.Sub(p1, p2, p3)

		for j := 0; j < N; j++ {
			require.Equal(t, (p1.Coeffs[j]+q-p2.Coeffs[j])%q, p3.Coeffs[j])
		}
	})

	t.Run(testString("Neg", tc.ringQ), func(t *testing.T) {

		p1, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		p2 := ringQ.NewPoly()
		ringQ.Neg(p1, p2)

		// p1 + (-p1) = 0, with -p1 in reduced form
		p3 := ringQ.NewPoly()
		ringQ.Add(p1, p2, p3)

		for j := 0; j < N; j++ {
			require.False(t, p2.Coeffs[j] >= q)
			require.Equal(t, uint64(0), p3.Coeffs[j])
		}
	})

	t.Run(testString("MulScalar", tc.ringQ), func(t *testing.T) {

		p1, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		p2 := ringQ.NewPoly()
		ringQ.MulScalar(p1, 2, p2)

		for j := 0; j < N; j++ {
			require.Equal(t, (p1.Coeffs[j]<<1)%q, p2.Coeffs[j])
		}

		// Scalars are reduced before use
		p3 := ringQ.NewPoly()
		ringQ.MulScalar(p1, q+2, p3)
		require.True(t, p2.Equal(p3))
	})
}

func testMul(tc *testParams, t *testing.T) {

	ringQ := tc.ringQ
	N := ringQ.N
	q := ringQ.Modulus

	t.Run(testString("Mul", tc.ringQ), func(t *testing.T) {

		p1, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)
		p2, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		p3 := ringQ.NewPoly()
		ringQ.Mul(p1, p2, p3)

		// Reference negacyclic product over big.Int
		bigQ := new(big.Int).SetUint64(q)
		ref := make([]*big.Int, N)
		for k := range ref {
			ref[k] = new(big.Int)
		}

		for i := 0; i < N; i++ {
			for j := 0; j < N; j++ {
				prod := new(big.Int).Mul(
					new(big.Int).SetUint64(p1.Coeffs[i]),
					new(big.Int).SetUint64(p2.Coeffs[j]),
				)
				if i+j < N {
					ref[i+j].Add(ref[i+j], prod)
				} else {
					ref[i+j-N].Sub(ref[i+j-N], prod)
				}
			}
		}

		for k := 0; k < N; k++ {
			require.Equal(t, ref[k].Mod(ref[k], bigQ).Uint64(), p3.Coeffs[k])
		}
	})

	t.Run(testString("Mul/Commutative", tc.ringQ), func(t *testing.T) {

		p1, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)
		p2, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		p3 := ringQ.NewPoly()
		p4 := ringQ.NewPoly()

		ringQ.Mul(p1, p2, p3)
		ringQ.Mul(p2, p1, p4)

		require.True(t, p3.Equal(p4))
	})

	t.Run(testString("Mul/NegacyclicIdentity", tc.ringQ), func(t *testing.T) {

		p1, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		// Multiplying N times by X maps p1 to p1 * X^N = -p1
		x := ringQ.NewPoly()
		x.Coeffs[1] = 1

		p2 := p1.CopyNew()
		for i := 0; i < N; i++ {
			ringQ.Mul(p2, x, p2)
		}

		p3 := ringQ.NewPoly()
		ringQ.Neg(p1, p3)

		require.True(t, p2.Equal(p3))
	})

	t.Run(testString("Mul/Aliasing", tc.ringQ), func(t *testing.T) {

		p1, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)
		p2, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		p3 := ringQ.NewPoly()
		ringQ.Mul(p1, p2, p3)

		p4 := p1.CopyNew()
		ringQ.Mul(p4, p2, p4)

		require.True(t, p3.Equal(p4))
	})
}

func testSampler(tc *testParams, t *testing.T) {

	ringQ := tc.ringQ
	N := ringQ.N
	q := ringQ.Modulus

	t.Run(testString("Sampler/Uniform", tc.ringQ), func(t *testing.T) {

		pol := ringQ.NewPoly()
		require.NoError(t, tc.uniformSampler.Read(pol))

		for j := 0; j < N; j++ {
			require.False(t, pol.Coeffs[j] >= q)
		}
	})

	t.Run(testString("Sampler/BoundedUniform", tc.ringQ), func(t *testing.T) {

		for _, bound := range []uint64{1, q >> 4, q} {

			sampler, err := NewSampler(tc.prng, ringQ, BoundedUniform{Bound: bound})
			require.NoError(t, err)

			pol, err := sampler.ReadNew()
			require.NoError(t, err)

			for j := 0; j < N; j++ {
				require.False(t, pol.Coeffs[j] >= bound)
			}
		}

		_, err := NewSampler(tc.prng, ringQ, BoundedUniform{Bound: 0})
		require.Error(t, err)

		_, err = NewSampler(tc.prng, ringQ, BoundedUniform{Bound: q + 1})
		require.Error(t, err)
	})

	t.Run(testString("Sampler/ReadAndAdd", tc.ringQ), func(t *testing.T) {

		key := []byte("sampler read and add")

		prng1, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)
		prng2, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)

		p1, err := NewUniformSampler(prng1, ringQ).ReadNew()
		require.NoError(t, err)

		p2, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		p3 := p2.CopyNew()
		require.NoError(t, NewUniformSampler(prng2, ringQ).ReadAndAdd(p3))

		p4 := ringQ.NewPoly()
		ringQ.Add(p1, p2, p4)

		require.True(t, p3.Equal(p4))
	})
}

func testMarshalBinary(tc *testParams, t *testing.T) {

	ringQ := tc.ringQ

	t.Run(testString("MarshalBinary/Poly", tc.ringQ), func(t *testing.T) {

		p, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		data, err := p.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, p.BinarySize(), len(data))

		pTest := ringQ.NewPoly()
		require.NoError(t, pTest.UnmarshalBinary(data))
		require.True(t, p.Equal(pTest))

		require.Error(t, pTest.UnmarshalBinary(data[:len(data)-1]))

		// Unreduced coefficients have no byte encoding
		bad := ringQ.NewPoly()
		bad.Coeffs[0] = MaxModulus + 1
		_, err = bad.MarshalBinary()
		require.Error(t, err)
	})
}

func testWriterAndReader(tc *testParams, t *testing.T) {

	t.Run(testString("WriterAndReader/Poly", tc.ringQ), func(t *testing.T) {

		p, err := tc.uniformSampler.ReadNew()
		require.NoError(t, err)

		data := make([]byte, 0, p.BinarySize())

		buf := bytes.NewBuffer(data) // Compliant to io.Writer and io.Reader

		if n, err := p.WriteTo(buf); err != nil {
			t.Fatal(err)
		} else {
			if int(n) != p.BinarySize() {
				t.Fatal()
			}
		}

		if data2, err := p.MarshalBinary(); err != nil {
			t.Fatal(err)
		} else {
			if !bytes.Equal(buf.Bytes(), data2) {
				t.Fatal()
			}
		}

		pTest := tc.ringQ.NewPoly()
		if n, err := pTest.ReadFrom(buf); err != nil {
			t.Fatal(err)
		} else {
			if int(n) != p.BinarySize() {
				t.Fatal()
			}
		}

		require.Equal(t, p.Coeffs, pTest.Coeffs)
	})
}
