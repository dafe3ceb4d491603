// Package sampling implements the randomness sources of the module: an
// io.Reader PRNG abstraction, a deterministic keyed PRNG and direct
// sampling of machine integers.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
)

// RandUint64 returns a uniformly random value in [0, 2^64), read from the
// system entropy source.
func RandUint64() uint64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b)
}
