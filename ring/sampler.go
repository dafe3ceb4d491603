package ring

import (
	"encoding/json"
	"fmt"

	"github.com/ringlwe/rlkex/utils/sampling"
)

const (
	uniformDistName        = "Uniform"
	boundedUniformDistName = "BoundedUniform"
)

// Sampler is an interface for random polynomial samplers. Its Read method
// populates the given polynomial according to the Sampler's distribution,
// returning an error only when the underlying randomness source fails.
type Sampler interface {
	Read(pol Poly) error
	ReadNew() (pol Poly, err error)
	ReadAndAdd(pol Poly) error
}

// DistributionParameters is an interface for distribution
// parameters in the ring.
// There are two implementations of this interface:
//   - Uniform for sampling polynomials with uniformly random
//     coefficients in the ring.
//   - BoundedUniform for sampling polynomials with uniformly random
//     coefficients in [0, Bound).
type DistributionParameters interface {
	// Type returns a string representation of the distribution name.
	Type() string
	mustBeDist()
}

// Uniform represents the parameters of a uniform distribution
// i.e., with coefficients uniformly distributed in the given ring.
type Uniform struct{}

// BoundedUniform represents the parameters of a uniform distribution
// over [0, Bound), for a Bound in [1, Modulus].
type BoundedUniform struct {
	Bound uint64
}

// NewSampler instantiates the Sampler for the distribution X over the given
// ring, reading its randomness from prng.
func NewSampler(prng sampling.PRNG, baseRing *Ring, X DistributionParameters) (Sampler, error) {
	switch X := X.(type) {
	case Uniform:
		return NewUniformSampler(prng, baseRing), nil
	case BoundedUniform:
		return NewBoundedUniformSampler(prng, baseRing, X)
	default:
		return nil, fmt.Errorf("invalid distribution: want ring.Uniform or ring.BoundedUniform but have %T", X)
	}
}

type baseSampler struct {
	prng     sampling.PRNG
	baseRing *Ring
}

type randomBuffer struct {
	randomBufferN []byte
	ptr           int
}

func newRandomBuffer() *randomBuffer {
	return &randomBuffer{
		randomBufferN: make([]byte, 1024),
	}
}

func (d Uniform) Type() string {
	return uniformDistName
}

func (d Uniform) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string
	}{Type: d.Type()})
}

func (d Uniform) mustBeDist() {}

func (d BoundedUniform) Type() string {
	return boundedUniformDistName
}

func (d BoundedUniform) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string
		Bound uint64
	}{Type: d.Type(), Bound: d.Bound})
}

func (d BoundedUniform) mustBeDist() {}

func getUintFromMap(distDef map[string]interface{}, key string) (uint64, error) {
	val, hasVal := distDef[key]
	if !hasVal {
		return 0, fmt.Errorf("map specifies no value for %s", key)
	}
	f, isNumeric := val.(float64)
	if !isNumeric || f != float64(uint64(f)) {
		return 0, fmt.Errorf("value for key %s in map should be an unsigned integer", key)
	}
	return uint64(f), nil
}

// ParametersFromMap parses a DistributionParameters from its generic map
// representation, as obtained from decoding its JSON form.
func ParametersFromMap(distDef map[string]interface{}) (DistributionParameters, error) {
	distTypeVal, specified := distDef["Type"]
	if !specified {
		return nil, fmt.Errorf("map specifies no distribution type")
	}
	distTypeStr, isString := distTypeVal.(string)
	if !isString {
		return nil, fmt.Errorf("value for key Type of map should be of type string")
	}
	switch distTypeStr {
	case uniformDistName:
		return Uniform{}, nil
	case boundedUniformDistName:
		bound, err := getUintFromMap(distDef, "Bound")
		if err != nil {
			return nil, fmt.Errorf("unable to parse bounded uniform parameter Bound: %w", err)
		}
		return BoundedUniform{Bound: bound}, nil
	default:
		return nil, fmt.Errorf("distribution type %s does not exist", distTypeStr)
	}
}
