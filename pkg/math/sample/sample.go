package sample

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
)

const maxIterations = 255

var (
	ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)
	// ErrInvalidBound is returned when the upper bound leaves no value to sample.
	ErrInvalidBound = errors.New("sample: bound must be at least 2")
)

// ModN samples an element of ℤₙ uniformly, by rejection.
func ModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	out := new(saferith.Nat)
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	// only keep as many bits of the leading byte as n has, so that a candidate is
	// rejected with probability < 1/2
	mask := byte(0xff)
	if excess := len(buf)*8 - bits; excess > 0 {
		mask >>= uint(excess)
	}
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, fmt.Errorf("sample: read randomness: %w", err)
		}
		buf[0] &= mask
		out.SetBytes(buf)
		if _, _, lt := out.CmpMod(n); lt == 1 {
			return out, nil
		}
	}
	return nil, ErrMaxIterations
}

// Scalar returns a uniformly random integer in [1, n − 1].
//
// This is the range of ephemeral scalars for a generator of order n. The randomness is
// read from rand, which must be a cryptographically strong source such as crypto/rand.Reader
// unless the result is only used for testing.
func Scalar(rand io.Reader, n *big.Int) (*big.Int, error) {
	if n == nil || n.Cmp(big.NewInt(2)) < 0 {
		return nil, ErrInvalidBound
	}
	m := saferith.ModulusFromBytes(n.Bytes())
	for i := 0; i < maxIterations; i++ {
		k, err := ModN(rand, m)
		if err != nil {
			return nil, err
		}
		if k.EqZero() != 1 {
			return k.Big(), nil
		}
	}
	return nil, ErrMaxIterations
}
