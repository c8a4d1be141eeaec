package arith

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrNoInverse is matched by every *NoInverseError.
	ErrNoInverse = errors.New("arith: no multiplicative inverse")
	// ErrInvalidModulus is returned when a modulus is nil or smaller than 2.
	ErrInvalidModulus = errors.New("arith: modulus must be at least 2")
)

// NoInverseError is returned by ModInverse when gcd(N, Modulus) ≠ 1.
// This happens when N is a multiple of the modulus, or the modulus is not prime.
type NoInverseError struct {
	N       *big.Int
	Modulus *big.Int
}

func (e *NoInverseError) Error() string {
	return fmt.Sprintf("arith: %v has no multiplicative inverse modulo %v", e.N, e.Modulus)
}

// Is makes errors.Is(err, ErrNoInverse) hold for any *NoInverseError.
func (e *NoInverseError) Is(target error) bool {
	return target == ErrNoInverse
}

// ExtendedEuclidean returns (gcd, s, t) such that a⋅s + b⋅t = gcd.
//
// The quotients are floored, so that the result matches the iterative algorithm
// over signed integers, including negative inputs. gcd may be negative when
// one of the inputs is; callers that need the magnitude should compare with CmpAbs.
func ExtendedEuclidean(a, b *big.Int) (gcd, s, t *big.Int) {
	var (
		oldR = new(big.Int).Set(a)
		r    = new(big.Int).Set(b)
		oldS = big.NewInt(1)
		sI   = big.NewInt(0)
		oldT = big.NewInt(0)
		tI   = big.NewInt(1)
		q    = new(big.Int)
		tmp  = new(big.Int)
	)
	for r.Sign() != 0 {
		// Div rounds toward -∞ only for positive divisors, so use the floored
		// quotient explicitly.
		floorDiv(q, oldR, r)

		// (oldR, r) = (r, oldR - q⋅r)
		tmp.Mul(q, r)
		tmp.Sub(oldR, tmp)
		oldR, r, tmp = r, tmp, oldR

		// (oldS, s) = (s, oldS - q⋅s)
		tmp.Mul(q, sI)
		tmp.Sub(oldS, tmp)
		oldS, sI, tmp = sI, tmp, oldS

		// (oldT, t) = (t, oldT - q⋅t)
		tmp.Mul(q, tI)
		tmp.Sub(oldT, tmp)
		oldT, tI, tmp = tI, tmp, oldT
	}
	return oldR, oldS, oldT
}

// floorDiv sets z = ⌊x / y⌋ and returns z.
func floorDiv(z, x, y *big.Int) *big.Int {
	m := new(big.Int)
	z.QuoRem(x, y, m)
	// QuoRem truncates toward zero; step down when the signs differ and the division is inexact.
	if m.Sign() != 0 && (m.Sign() < 0) != (y.Sign() < 0) {
		z.Sub(z, one)
	}
	return z
}

// ModInverse returns x ∈ [0, p) such that n⋅x ≡ 1 (mod p).
//
// If gcd(n, p) ≠ 1, a *NoInverseError is returned. n may be negative or larger than p.
func ModInverse(n, p *big.Int) (*big.Int, error) {
	if n == nil || p == nil || p.Cmp(one) <= 0 {
		return nil, ErrInvalidModulus
	}
	gcd, x, _ := ExtendedEuclidean(n, p)
	if gcd.CmpAbs(one) != 0 {
		return nil, &NoInverseError{
			N:       new(big.Int).Set(n),
			Modulus: new(big.Int).Set(p),
		}
	}
	// With a negative n the algorithm can end on gcd = -1, in which case -x is the inverse.
	if gcd.Sign() < 0 {
		x.Neg(x)
	}
	return x.Mod(x, p), nil
}
