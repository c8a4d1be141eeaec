package curve

import (
	"fmt"
	"math/big"
)

// ScalarMult returns n⋅v, using left-to-right double-and-add.
//
// 0⋅v is the identity. An error wrapping ErrInvalidOperand is returned if n is nil or negative.
//
// The running time depends on n; this must not be used where n has to stay secret
// from an observer timing the computation.
func (v *Point) ScalarMult(n *big.Int) (*Point, error) {
	if err := checkScalar(n); err != nil {
		return nil, fmt.Errorf("curve.Point.ScalarMult: %w", err)
	}

	var err error
	result := v.curve.Identity()
	for i := n.BitLen() - 1; i >= 0; i-- {
		if result, err = result.Double(); err != nil {
			return nil, fmt.Errorf("curve.Point.ScalarMult: %w", err)
		}
		if n.Bit(i) == 1 {
			if result, err = result.Add(v); err != nil {
				return nil, fmt.Errorf("curve.Point.ScalarMult: %w", err)
			}
		}
	}
	return result, nil
}

// ScalarMultNaive returns n⋅v by adding v to itself n − 1 times.
//
// It performs O(n) group operations and only exists as a reference for ScalarMult,
// and for callers reproducing results that depend on the repeated-addition sequence.
func (v *Point) ScalarMultNaive(n *big.Int) (*Point, error) {
	if err := checkScalar(n); err != nil {
		return nil, fmt.Errorf("curve.Point.ScalarMultNaive: %w", err)
	}
	if n.Sign() == 0 {
		return v.curve.Identity(), nil
	}

	var err error
	result := v
	remaining := new(big.Int).Sub(n, big.NewInt(1))
	for one := big.NewInt(1); remaining.Sign() > 0; remaining.Sub(remaining, one) {
		if result, err = result.Add(v); err != nil {
			return nil, fmt.Errorf("curve.Point.ScalarMultNaive: %w", err)
		}
	}
	return result, nil
}

func checkScalar(n *big.Int) error {
	if n == nil {
		return fmt.Errorf("%w: nil scalar", ErrInvalidOperand)
	}
	if n.Sign() < 0 {
		return fmt.Errorf("%w: negative scalar %v", ErrInvalidOperand, n)
	}
	return nil
}
