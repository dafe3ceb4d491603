package ring

import (
	"math/big"
)

// IsPrime applies the Baillie-PSW test, which is 100% accurate for numbers
// below 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}
