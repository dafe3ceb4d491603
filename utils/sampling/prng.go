package sampling

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/blake2b"
)

// PRNG is the interface for the sources of random bytes consumed by the
// polynomial samplers and the share generation routines. It is implemented
// by the deterministic KeyedPRNG and by the SystemPRNG backed by the
// operating system entropy pool.
type PRNG interface {
	io.Reader
}

// KeyedPRNG expands a key into an unbounded sequence of bytes with the
// blake2b XOF. Two KeyedPRNG instantiated with the same key produce the
// same sequence, which is what makes seed-reproducible share generation and
// the derivation of a common random polynomial by two remote parties
// possible.
//
// A KeyedPRNG must not be shared between goroutines: interleaved reads
// would make the produced sequence depend on the scheduling.
type KeyedPRNG struct {
	key []byte
	xof blake2b.XOF
}

// NewKeyedPRNG creates a new KeyedPRNG with the provided key. A nil key is
// valid and treated as an empty key; the resulting sequence is then
// predictable by anyone and only suitable for tests.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, err
	}
	prng := &KeyedPRNG{xof: xof}
	if len(key) > 0 {
		prng.key = make([]byte, len(key))
		copy(prng.key, key)
	}
	return prng, nil
}

// Key returns a copy of the key used to instantiate the PRNG. This value
// can be passed to NewKeyedPRNG to obtain a new PRNG producing the same
// stream of bytes.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read fills sum with the next len(sum) bytes of the sequence.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	return prng.xof.Read(sum)
}

// Reset rewinds the PRNG to the beginning of its sequence.
func (prng *KeyedPRNG) Reset() {
	prng.xof.Reset()
}

// SystemPRNG reads from the operating system entropy source. Unlike the
// KeyedPRNG its output cannot be replayed.
type SystemPRNG struct{}

// NewPRNG returns a PRNG backed by crypto/rand.
func NewPRNG() (*SystemPRNG, error) {
	return &SystemPRNG{}, nil
}

// Read fills sum with random bytes from the system source.
func (prng *SystemPRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}
