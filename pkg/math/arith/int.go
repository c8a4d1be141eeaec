package arith

import "math/big"

var one = big.NewInt(1)

// Mod returns a (mod p) as a new integer in [0, p).
// p must be positive.
func Mod(a, p *big.Int) *big.Int {
	// big.Int.Mod is the Euclidean modulus, so the result is never negative.
	return new(big.Int).Mod(a, p)
}
